package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/markview/internal/buf"
	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/internal/memory"
)

// Node is one _SPCLockFreeListNode to encode into a fixture segment.
type Node struct {
	Addr     uint64
	RefCount int64
	Next     uint64 // raw markable reference
	Key      int64
	Data     uint64
}

// DefaultNodes returns the three-node chain A -> B -> C, where A's link is marked.
func DefaultNodes() []Node {
	return []Node{
		{Addr: NodeA, RefCount: 2, Next: NodeB | 1, Key: 10, Data: 0xdead0},
		{Addr: NodeB, RefCount: 1, Next: NodeC, Key: 20, Data: 0xbeef0},
		{Addr: NodeC, RefCount: 1, Next: 0, Key: 30, Data: 0},
	}
}

// EncodeNodes writes nodes into a zeroed buffer of size bytes that will be
// loaded at base, using arch's pointer size and byte order.
func EncodeNodes(tb testing.TB, arch format.Arch, base uint64, size int, nodes []Node) []byte {
	tb.Helper()
	p := arch.PointerSize
	data := make([]byte, size)
	for _, n := range nodes {
		off := int(n.Addr - base)
		b, ok := buf.Slice(data, off, 4*p)
		if !ok {
			tb.Fatalf("node %#x does not fit segment [%#x,+%#x)", n.Addr, base, size)
		}
		buf.PutUint(b[0:], p, arch.ByteOrder, uint64(n.RefCount))
		buf.PutUint(b[p:], p, arch.ByteOrder, n.Next)
		buf.PutUint(b[2*p:], p, arch.ByteOrder, uint64(n.Key))
		buf.PutUint(b[3*p:], p, arch.ByteOrder, n.Data)
	}
	return data
}

// EncodeListHeader writes an SPCLockFreeList header at addr inside data.
func EncodeListHeader(tb testing.TB, arch format.Arch, data []byte, base, addr, head, tail uint64, size uint64) {
	tb.Helper()
	p := arch.PointerSize
	b, ok := buf.Slice(data, int(addr-base), 5*p)
	if !ok {
		tb.Fatalf("list header %#x does not fit segment", addr)
	}
	buf.PutUint(b[0:], p, arch.ByteOrder, head)
	buf.PutUint(b[p:], p, arch.ByteOrder, tail)
	buf.PutUint(b[4*p:], p, arch.ByteOrder, size)
}

// HeapBytes returns the LP64 fixture heap: DefaultNodes plus a list header at
// ListHeader pointing at NodeA and NodeC.
func HeapBytes(tb testing.TB) []byte {
	tb.Helper()
	data := EncodeNodes(tb, format.LP64, HeapBase, HeapSize, DefaultNodes())
	EncodeListHeader(tb, format.LP64, data, HeapBase, ListHeader, NodeA, NodeC, 3)
	return data
}

// ListImage returns an in-memory image holding HeapBytes at HeapBase.
func ListImage(tb testing.TB) *memory.Image {
	tb.Helper()
	img := memory.New()
	if err := img.Add(memory.Segment{Base: HeapBase, Data: HeapBytes(tb), Name: "heap"}); err != nil {
		tb.Fatalf("add heap segment: %v", err)
	}
	return img
}

// WriteSegmentFile writes data to a file in a fresh temp dir and returns its path.
func WriteSegmentFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write segment %s: %v", path, err)
	}
	return path
}
