package main

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/internal/testutil"
)

func TestChainCommand(t *testing.T) {
	segment := heapSegment(t)

	tests := []struct {
		name        string
		arg         string
		setup       func()
		wantErr     bool
		wantOutput  string
		wantContain []string
	}{
		{
			name: "whole list",
			arg:  "0x1000",
			wantOutput: "[0] 0x1000 -> 0x1020*  (deleted)\n" +
				"[1] 0x1020* -> 0x1040\n" +
				"[2] 0x1040 -> 0x0\n" +
				"3 node(s)\n",
		},
		{
			name:       "limit",
			arg:        "0x1000",
			setup:      func() { chainLimit = 1 },
			wantOutput: "[0] 0x1000 -> 0x1020*  (deleted)\n1 node(s)\n",
		},
		{
			name:       "null start",
			arg:        "0x1",
			wantOutput: "0 node(s)\n",
		},
		{
			name:    "missing field",
			arg:     "0x1000",
			setup:   func() { chainField = "_next" },
			wantErr: true,
		},
		{
			name:    "unmapped node",
			arg:     fmt.Sprintf("%#x", testutil.Unmapped),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			segmentSpecs = []string{segment}
			if tt.setup != nil {
				tt.setup()
			}

			output, err := captureOutput(t, func() error {
				return runChain([]string{tt.arg})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantOutput, output)
		})
	}
}

func TestChainCommand_CycleIsReported(t *testing.T) {
	nodes := []testutil.Node{
		{Addr: testutil.NodeA, Next: testutil.NodeB, Key: 1},
		{Addr: testutil.NodeB, Next: testutil.NodeA | 1, Key: 2},
	}
	data := testutil.EncodeNodes(t, format.LP64, testutil.HeapBase, testutil.HeapSize, nodes)
	path := testutil.WriteSegmentFile(t, "cycle.bin", data)

	resetFlags()
	segmentSpecs = []string{fmt.Sprintf("%#x=%s", testutil.HeapBase, path)}
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runChain([]string{"0x1000"})
	})
	require.NoError(t, err)

	var got chainOutput
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	require.Len(t, got.Links, 2)
	require.Equal(t, "0x1000", got.Links[0].Ref)
	require.False(t, got.Links[0].Deleted)
	require.Equal(t, "0x1000*", got.Links[1].Next)
	require.True(t, got.Links[1].Deleted)
	require.Contains(t, got.Error, "revisits")
}
