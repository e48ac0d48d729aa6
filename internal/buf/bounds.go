package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// AddrEnd returns addr+n, or ok = false when n is negative or the range wraps
// past the top of the 64-bit address space.
func AddrEnd(addr uint64, n int) (uint64, bool) {
	if n < 0 {
		return 0, false
	}
	end := addr + uint64(n)
	if end < addr {
		return 0, false
	}
	return end, true
}

// CheckRange validates that [addr, addr+n) lies inside [base, base+size).
// Returns the offset of addr relative to base, or an error describing the
// specific failure (overflow or out of bounds).
//
// This is the recommended way to validate a read before slicing a segment:
//
//	off, err := buf.CheckRange(seg.Base, len(seg.Data), addr, n)
//	if err != nil {
//	    return nil, fmt.Errorf("read: %w", err)
//	}
//	// Safe to use seg.Data[off : off+n]
func CheckRange(base uint64, size int, addr uint64, n int) (int, error) {
	if size < 0 {
		return 0, fmt.Errorf("negative segment size: %d", size)
	}
	end, ok := AddrEnd(addr, n)
	if !ok {
		return 0, fmt.Errorf("overflow: addr=%#x + n=%d", addr, n)
	}
	segEnd, ok := AddrEnd(base, size)
	if !ok {
		return 0, fmt.Errorf("overflow: base=%#x + size=%d", base, size)
	}
	if addr < base || end > segEnd {
		return 0, fmt.Errorf("bounds: [%#x,%#x) outside [%#x,%#x)", addr, end, base, segEnd)
	}
	return int(addr - base), nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
