package mark

import "github.com/joshuapare/markview/pkg/types"

// NotFound is returned by IndexOf for names the node does not have.
const NotFound = -1

// Children answers structural queries for a resolved reference by delegating
// to the node's own field set. The zero Children is the empty set every
// unresolved reference presents.
type Children struct {
	ptr  uint64
	node types.FieldSet
}

// NewChildren pairs the typed pointer to a node with the node's fields. A
// pointer that cannot be read counts as null.
func NewChildren(ptr types.Value, node types.FieldSet) Children {
	if ptr == nil || node == nil {
		return Children{}
	}
	addr, err := ptr.Unsigned()
	if err != nil {
		return Children{}
	}
	return Children{ptr: addr, node: node}
}

// HasChildren reports whether the pointer is non-null and the node has at
// least one field.
func (c Children) HasChildren() bool {
	return c.node != nil && c.ptr != 0 && c.node.NumFields() > 0
}

// Count returns the node's field count, 0 when unresolved.
func (c Children) Count() int {
	if c.node == nil {
		return 0
	}
	return c.node.NumFields()
}

// IndexOf returns the position of the field called name, or NotFound.
func (c Children) IndexOf(name string) int {
	for i := 0; i < c.Count(); i++ {
		if n, ok := c.node.FieldName(i); ok && n == name {
			return i
		}
	}
	return NotFound
}

// At returns field i, or false when unresolved or out of range.
func (c Children) At(i int) (types.Value, bool) {
	if i < 0 || i >= c.Count() {
		return nil, false
	}
	return c.node.FieldValue(i)
}
