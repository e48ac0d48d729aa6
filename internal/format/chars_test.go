package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeChars(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii with terminator", []byte("node\x00garbage"), "node"},
		{"no terminator", []byte("full"), "full"},
		{"empty", []byte{0, 'x'}, ""},
		{"utf8", []byte("weird™\x00"), "weird™"},
		{"windows-1252", []byte{'a', 0xe4, 0x80, 0}, "aä€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeChars(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
