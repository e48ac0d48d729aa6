package mark

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleRaw returns edge values plus a fixed pseudo-random spread.
func sampleRaw() []uint64 {
	vals := []uint64{0, 1, 2, 3, 0x1000, 0x1001, 0xfffe, math.MaxUint32, math.MaxUint64, math.MaxUint64 - 1}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		vals = append(vals, rng.Uint64())
	}
	return vals
}

func TestDecode_Scenarios(t *testing.T) {
	require.Equal(t, Decoded{Address: 0x1000, Marked: false}, Decode(0x1000))
	require.Equal(t, Decoded{Address: 0x1000, Marked: true}, Decode(0x1001))
	require.Equal(t, Decoded{Address: 0, Marked: false}, Decode(0))
	require.Equal(t, Decoded{Address: 0, Marked: true}, Decode(NullMarked))
}

// Property: address is raw minus its low bit; mark is the low bit.
func TestDecode_PropertyBitArithmetic(t *testing.T) {
	for _, v := range sampleRaw() {
		d := Decode(v)
		require.Equal(t, v&1 != 0, d.Marked, "raw=%#x", v)
		require.Equal(t, v-(v&1), d.Address, "raw=%#x", v)
		require.Zero(t, d.Address&1, "decoded address must be even")
		require.Equal(t, d, Decode(v), "decode must be idempotent")
		require.Equal(t, v, d.Raw(), "re-encoding restores raw bits")
		require.Equal(t, d.Marked, IsMarked(v))
		require.Equal(t, d.Address, Unmark(v))
	}
}

func TestEncode(t *testing.T) {
	require.Equal(t, uint64(0x1001), Encode(0x1000, true))
	require.Equal(t, uint64(0x1000), Encode(0x1001, false))
	require.Equal(t, uint64(0x1001), Encode(0x1001, true))
	require.Equal(t, NullMarked, Encode(0, true))
	require.True(t, Decode(NullMarked).IsNull())
	require.False(t, Decode(0x1000).IsNull())
}

func TestSummary_Scenarios(t *testing.T) {
	tests := []struct {
		raw  uint64
		want string
	}{
		{0x1000, "0x1000"},
		{0x1001, "0x1000*"},
		{0, "0x0"},
		{1, "0x0*"},
		{0xdeadbeef, "0xdeadbeee*"},
		{math.MaxUint64, "0xfffffffffffffffe*"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Summary(tt.raw), "raw=%#x", tt.raw)
	}
}

// Property: the suffix appears iff marked, and the numeric part is the
// decoded address in hex.
func TestSummary_PropertyMatchesDecode(t *testing.T) {
	for _, v := range sampleRaw() {
		s := Summary(v)
		d := Decode(v)
		require.Equal(t, d.Marked, strings.HasSuffix(s, MarkSuffix), "raw=%#x", v)
		num := strings.TrimSuffix(strings.TrimPrefix(s, "0x"), MarkSuffix)
		got, err := strconv.ParseUint(num, 16, 64)
		require.NoError(t, err)
		require.Equal(t, d.Address, got, "raw=%#x", v)
	}
}

func TestFormatPointer(t *testing.T) {
	require.Equal(t, "0x0000000000001001", FormatPointer(0x1001, 8))
	require.Equal(t, "0x00001000", FormatPointer(0x1000, 4))
	require.Equal(t, "0x0000000000000000", FormatPointer(0, 0))
}
