// Package types defines the public contracts shared by markview's decoder,
// resolver and inspection host.
//
// A markable reference is a pointer-sized integer whose least-significant bit
// flags the referenced node as logically deleted. The packages under mark/
// split that integer into an address and a flag, resolve the address against a
// configured node layout inside a read-only memory image, and expose the node
// to a tree-style inspector.
//
// Design goals:
//   - Read-only: target memory is never written.
//   - Explicit results; structural queries degrade to empty values instead of
//     failing.
//   - Typed errors with stable categories (config/address/format/...).
//
// This package has no dependencies beyond the standard library.
package types
