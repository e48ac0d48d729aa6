// Package memory provides read-only memory images of an inspected process.
//
// An Image is a set of non-overlapping segments, each a byte slice loaded at a
// base address (for example raw .bin snapshots of a heap region). Reads never
// span segments: a range that is not fully inside one segment is unmapped.
package memory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/joshuapare/markview/internal/buf"
)

var (
	// ErrUnmapped indicates a read touching bytes outside every segment.
	ErrUnmapped = errors.New("memory: address not mapped")
	// ErrOverlap indicates a segment overlapping one already in the image.
	ErrOverlap = errors.New("memory: overlapping segment")
)

// Segment is a contiguous block of target memory starting at Base.
type Segment struct {
	Base uint64
	Data []byte
	Name string // file or label the segment came from, for diagnostics
}

// End returns the first address past the segment.
func (s Segment) End() uint64 {
	return s.Base + uint64(len(s.Data))
}

// Image implements types.Memory over a sorted list of segments.
type Image struct {
	segs     []Segment
	cleanups []func() error
}

// New returns an empty image.
func New() *Image {
	return &Image{}
}

// Add inserts seg, keeping segments sorted by base address.
func (m *Image) Add(seg Segment) error {
	if len(seg.Data) == 0 {
		return fmt.Errorf("memory: segment %q at %#x is empty", seg.Name, seg.Base)
	}
	if _, ok := buf.AddrEnd(seg.Base, len(seg.Data)); !ok {
		return fmt.Errorf("memory: segment %q at %#x wraps the address space", seg.Name, seg.Base)
	}
	i := sort.Search(len(m.segs), func(i int) bool { return m.segs[i].Base >= seg.Base })
	if i > 0 && m.segs[i-1].End() > seg.Base {
		return fmt.Errorf("%w: %q at %#x overlaps %q", ErrOverlap, seg.Name, seg.Base, m.segs[i-1].Name)
	}
	if i < len(m.segs) && seg.End() > m.segs[i].Base {
		return fmt.Errorf("%w: %q at %#x overlaps %q", ErrOverlap, seg.Name, seg.Base, m.segs[i].Name)
	}
	m.segs = append(m.segs, Segment{})
	copy(m.segs[i+1:], m.segs[i:])
	m.segs[i] = seg
	return nil
}

// Segments returns the segments in address order.
func (m *Image) Segments() []Segment {
	out := make([]Segment, len(m.segs))
	copy(out, m.segs)
	return out
}

// ReadAt returns a copy of the n bytes at addr.
func (m *Image) ReadAt(addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("memory: negative read length %d", n)
	}
	seg, ok := m.find(addr)
	if !ok {
		return nil, fmt.Errorf("%w: %#x", ErrUnmapped, addr)
	}
	off, err := buf.CheckRange(seg.Base, len(seg.Data), addr, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmapped, err)
	}
	out := make([]byte, n)
	copy(out, seg.Data[off:off+n])
	return out, nil
}

// Mapped reports whether [addr, addr+n) is readable.
func (m *Image) Mapped(addr uint64, n int) bool {
	seg, ok := m.find(addr)
	if !ok {
		return false
	}
	_, err := buf.CheckRange(seg.Base, len(seg.Data), addr, n)
	return err == nil
}

// Close releases file mappings held by segments loaded from disk.
func (m *Image) Close() error {
	var errs []error
	for _, c := range m.cleanups {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	m.cleanups = nil
	m.segs = nil
	return errors.Join(errs...)
}

// find returns the segment whose range contains addr.
func (m *Image) find(addr uint64) (Segment, bool) {
	i := sort.Search(len(m.segs), func(i int) bool { return m.segs[i].End() > addr })
	if i == len(m.segs) || m.segs[i].Base > addr {
		return Segment{}, false
	}
	return m.segs[i], true
}
