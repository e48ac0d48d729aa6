package format

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Arch describes the data model of the inspected process: how wide a pointer
// is and in which byte order integers are stored.
type Arch struct {
	Name        string
	PointerSize int
	ByteOrder   binary.ByteOrder
}

var (
	// LP64 is the 64-bit little-endian model (x86_64, arm64). Default.
	LP64 = Arch{Name: "lp64", PointerSize: 8, ByteOrder: binary.LittleEndian}
	// ILP32 is the 32-bit little-endian model (i386, armv7).
	ILP32 = Arch{Name: "ilp32", PointerSize: 4, ByteOrder: binary.LittleEndian}
	// LP64BE is the 64-bit big-endian model.
	LP64BE = Arch{Name: "lp64be", PointerSize: 8, ByteOrder: binary.BigEndian}
)

// ParseArch returns the Arch registered under name. Accepts a few common
// aliases ("amd64", "arm64", "386", "arm").
func ParseArch(name string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lp64", "amd64", "x86_64", "arm64":
		return LP64, nil
	case "ilp32", "386", "i386", "arm", "armv7":
		return ILP32, nil
	case "lp64be", "s390x", "ppc64":
		return LP64BE, nil
	default:
		return Arch{}, fmt.Errorf("%w: %q", ErrUnknownArch, name)
	}
}

// PointerMask keeps the bits of a value that fit in a pointer.
func (a Arch) PointerMask() uint64 {
	if a.PointerSize >= 8 {
		return ^uint64(0)
	}
	return uint64(1)<<(8*uint(a.PointerSize)) - 1
}

func (a Arch) String() string { return a.Name }
