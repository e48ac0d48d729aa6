package format

import "fmt"

// Kind is the storage class of a Type.
type Kind uint8

const (
	KindInvalid  Kind = iota
	KindVoid          // no storage; only meaningful behind a pointer
	KindInt           // signed integer
	KindUint          // unsigned integer
	KindPointer       // plain address
	KindMarkable      // address with the mark in bit 0
	KindChars         // fixed-size char array, NUL-terminated text
	KindStruct        // aggregate of named fields
)

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindPointer:
		return "pointer"
	case KindMarkable:
		return "markable"
	case KindChars:
		return "chars"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Type is a layout description for a value in target memory.
//
// Structs may be registered before their fields are known so that members can
// point back at the struct itself; such a type reports Complete() == false
// until DefineStruct fills it in.
type Type struct {
	Name   string
	Kind   Kind
	Size   int
	Align  int
	Elem   *Type   // pointee for KindPointer
	Fields []Field // members for KindStruct

	complete bool
}

// Field is a named member of a struct at a byte offset from its start.
type Field struct {
	Name   string
	Offset int
	Type   *Type
}

// IsScalar reports whether values of t are read as a single integer.
func (t *Type) IsScalar() bool {
	switch t.Kind {
	case KindInt, KindUint, KindPointer, KindMarkable:
		return true
	default:
		return false
	}
}

// Complete reports whether the size and members of t are known.
func (t *Type) Complete() bool {
	return t.complete
}

// FieldIndex returns the position of the member called name, or -1.
func (t *Type) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (t *Type) String() string { return t.Name }
