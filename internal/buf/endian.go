// Package buf contains helpers for width- and endian-aware decoding routines.
package buf

import "encoding/binary"

// Uint reads an unsigned integer of size bytes (1, 2, 4 or 8) from b using
// order. Returns ok = false when b is too short or size is unsupported.
func Uint(b []byte, size int, order binary.ByteOrder) (uint64, bool) {
	if size <= 0 || len(b) < size {
		return 0, false
	}
	switch size {
	case 1:
		return uint64(b[0]), true
	case 2:
		return uint64(order.Uint16(b)), true
	case 4:
		return uint64(order.Uint32(b)), true
	case 8:
		return order.Uint64(b), true
	default:
		return 0, false
	}
}

// Int reads a signed integer of size bytes from b, sign-extending to int64.
func Int(b []byte, size int, order binary.ByteOrder) (int64, bool) {
	u, ok := Uint(b, size, order)
	if !ok {
		return 0, false
	}
	switch size {
	case 1:
		return int64(int8(u)), true
	case 2:
		return int64(int16(u)), true
	case 4:
		return int64(int32(u)), true
	default:
		return int64(u), true
	}
}

// PutUint writes v into b as a size-byte integer using order. Returns false
// when b is too short or size is unsupported. Higher bits of v that do not fit
// are dropped.
func PutUint(b []byte, size int, order binary.ByteOrder, v uint64) bool {
	if size <= 0 || len(b) < size {
		return false
	}
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		order.PutUint16(b, uint16(v))
	case 4:
		order.PutUint32(b, uint32(v))
	case 8:
		order.PutUint64(b, v)
	default:
		return false
	}
	return true
}
