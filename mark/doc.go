// Package mark decodes markable references and presents the nodes they point
// at to a tree-style inspector.
//
// A markable reference packs a node address and a one-bit flag:
//
//	 63                                     1   0
//	+----------------------------------------+---+
//	|           node address (even)          | m |
//	+----------------------------------------+---+
//
// Lock-free lists set m on a node's link to mark the node logically deleted.
// The pieces build on each other:
//
//	Decode     raw bits -> Decoded{Address, Marked}
//	Summary    raw bits -> "0x1000" or "0x1000*"
//	Resolver   Decoded + target type -> Resolution{Pointer, Node}
//	Children   Resolution -> field count / index / value queries
//	Provider   per-value state machine tying the above to an inspection host
//
// Everything here is read-only over a Target's memory. Structural queries
// never fail: an unresolvable reference shows up as a childless value.
package mark
