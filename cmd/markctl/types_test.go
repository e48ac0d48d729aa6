package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypesCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error { return runTypes(nil) })
	require.NoError(t, err)
	assertContains(t, output, []string{
		"SPCLockFreeList (size 40, align 8)\n",
		"_SPCLockFreeListNode (size 32, align 8)\n",
		"SPCLockFreeListNode (size 32, align 8)\n",
		"  +0x8   _next_d                  markable_ptr_t\n",
		"  +0x20  _size                    size_t\n",
	})
}

func TestTypesCommand_ILP32(t *testing.T) {
	resetFlags()
	archName = "ilp32"
	jsonOut = true

	output, err := captureOutput(t, func() error { return runTypes([]string{"_SPCLockFreeListNode"}) })
	require.NoError(t, err)

	var got []typeOutput
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	require.Len(t, got, 1)
	require.Equal(t, 16, got[0].Size)
	require.Equal(t, fieldOutput{Name: "_key", Type: "long", Offset: 8, Size: 4}, got[0].Fields[2])
}

func TestTypesCommand_Layout(t *testing.T) {
	layout := filepath.Join(t.TempDir(), "extra.json")
	require.NoError(t, os.WriteFile(layout,
		[]byte(`{"types": [{"name": "pair", "fields": [{"name": "a", "type": "char"}, {"name": "b", "type": "long"}]}]}`),
		0o644))

	resetFlags()
	layoutPath = layout
	output, err := captureOutput(t, func() error { return runTypes([]string{"pair"}) })
	require.NoError(t, err)
	require.Equal(t, "pair (size 16, align 8)\n"+
		"  +0x0   a                        char\n"+
		"  +0x8   b                        long\n", output)

	resetFlags()
	_, err = captureOutput(t, func() error { return runTypes([]string{"pair"}) })
	require.Error(t, err)
}
