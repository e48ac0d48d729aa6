package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/markview/internal/mmfile"
)

// SegmentSpec names a file to load at a base address.
type SegmentSpec struct {
	Base uint64
	Path string
}

// ParseSegmentSpec parses "ADDR=PATH", where ADDR accepts Go integer literal
// syntax (0x1000, 4096, 0o10000).
//
// Example:
//
//	spec, err := memory.ParseSegmentSpec("0x100200=heap.bin")
func ParseSegmentSpec(s string) (SegmentSpec, error) {
	addr, path, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(path) == "" {
		return SegmentSpec{}, fmt.Errorf("memory: segment %q: want ADDR=PATH", s)
	}
	base, err := strconv.ParseUint(strings.TrimSpace(addr), 0, 64)
	if err != nil {
		return SegmentSpec{}, fmt.Errorf("memory: segment %q: bad address: %w", s, err)
	}
	return SegmentSpec{Base: base, Path: strings.TrimSpace(path)}, nil
}

// LoadSegment maps the file at path and adds it to the image at base.
func (m *Image) LoadSegment(base uint64, path string) error {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return fmt.Errorf("memory: load %s: %w", path, err)
	}
	if err := m.Add(Segment{Base: base, Data: data, Name: path}); err != nil {
		if cleanup != nil {
			_ = cleanup()
		}
		return err
	}
	if cleanup != nil {
		m.cleanups = append(m.cleanups, cleanup)
	}
	return nil
}

// Open builds an image from segment specs. On failure every mapping made so
// far is released.
func Open(specs []SegmentSpec) (*Image, error) {
	m := New()
	for _, s := range specs {
		if err := m.LoadSegment(s.Base, s.Path); err != nil {
			_ = m.Close()
			return nil, err
		}
	}
	return m, nil
}
