package mark

import (
	"fmt"

	"github.com/joshuapare/markview/internal/buf"
	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/pkg/types"
)

// Target is the inspected process: its memory and the layouts of its types.
type Target struct {
	Memory types.Memory
	Types  *format.Registry
}

// NewTarget bundles mem and reg.
func NewTarget(mem types.Memory, reg *format.Registry) *Target {
	return &Target{Memory: mem, Types: reg}
}

// Arch returns the data model of the target's type registry.
func (tg *Target) Arch() format.Arch {
	return tg.Types.Arch()
}

// ValueAt returns a value of type t located at addr. Memory is read lazily,
// so an unmapped addr only surfaces on the first read.
func (tg *Target) ValueAt(name string, addr uint64, t *format.Type) *Value {
	return &Value{target: tg, name: name, typ: t, addr: addr, loc: true}
}

// ValueFromData returns a value of type t backed by data instead of target
// memory. data is not copied.
func (tg *Target) ValueFromData(name string, data []byte, t *format.Type) *Value {
	return &Value{target: tg, name: name, typ: t, data: data}
}

// ValueFromUnsigned encodes v as a t.Size-byte scalar in the target's byte
// order. Bits that do not fit are dropped.
func (tg *Target) ValueFromUnsigned(name string, v uint64, t *format.Type) *Value {
	data := make([]byte, t.Size)
	buf.PutUint(data, t.Size, tg.Arch().ByteOrder, v)
	return tg.ValueFromData(name, data, t)
}

// Markable returns a markable_ptr_t value holding raw, as if read from a
// variable called name. Bits that do not fit a target pointer are dropped.
func (tg *Target) Markable(name string, raw uint64) (*Value, error) {
	t, err := tg.Types.Lookup(format.MarkableType)
	if err != nil {
		return nil, err
	}
	return tg.ValueFromUnsigned(name, raw&tg.Arch().PointerMask(), t), nil
}

// Value is a typed view of target memory or of inline bytes. It implements
// types.Value and types.FieldSet.
type Value struct {
	target *Target
	name   string
	typ    *format.Type
	addr   uint64
	loc    bool
	data   []byte
}

var (
	_ types.Value    = (*Value)(nil)
	_ types.FieldSet = (*Value)(nil)
)

// isNilValue reports whether v is a nil interface or holds a nil *Value.
func isNilValue(v types.Value) bool {
	if v == nil {
		return true
	}
	mv, ok := v.(*Value)
	return ok && mv == nil
}

// Name implements types.Value.
func (v *Value) Name() string {
	if v == nil {
		return ""
	}
	return v.name
}

// TypeName implements types.Value.
func (v *Value) TypeName() string {
	if v == nil {
		return ""
	}
	return v.typ.Name
}

// Type returns the value's layout.
func (v *Value) Type() *format.Type { return v.typ }

// Location implements types.Value.
func (v *Value) Location() (uint64, bool) {
	if v == nil {
		return 0, false
	}
	return v.addr, v.loc
}

// Target returns the process v belongs to.
func (v *Value) Target() *Target { return v.target }

// Bytes returns the value's storage. Values located in memory are read on
// every call; nothing is cached.
func (v *Value) Bytes() ([]byte, error) {
	if v == nil {
		return nil, types.ErrInaccessible
	}
	if !v.loc {
		if len(v.data) < v.typ.Size {
			return nil, &types.Error{
				Kind: types.ErrKindFormat,
				Msg:  fmt.Sprintf("%s: have %d bytes, need %d", v.name, len(v.data), v.typ.Size),
			}
		}
		return v.data[:v.typ.Size], nil
	}
	if v.target.Memory == nil {
		return nil, types.Wrap(types.ErrInaccessible, fmt.Errorf("%s: no memory attached", v.name))
	}
	b, err := v.target.Memory.ReadAt(v.addr, v.typ.Size)
	if err != nil {
		return nil, types.Wrap(types.ErrInaccessible, fmt.Errorf("%s at %#x: %w", v.name, v.addr, err))
	}
	return b, nil
}

// Unsigned implements types.Value for scalar types.
func (v *Value) Unsigned() (uint64, error) {
	if v == nil {
		return 0, types.ErrInaccessible
	}
	if !v.typ.IsScalar() {
		return 0, types.Wrap(types.ErrTypeMismatch, fmt.Errorf("%s is a %s", v.typ.Name, v.typ.Kind))
	}
	b, err := v.Bytes()
	if err != nil {
		return 0, err
	}
	u, ok := buf.Uint(b, v.typ.Size, v.target.Arch().ByteOrder)
	if !ok {
		return 0, &types.Error{Kind: types.ErrKindFormat, Msg: fmt.Sprintf("%s: unsupported width %d", v.typ.Name, v.typ.Size)}
	}
	return u, nil
}

// Signed reads a signed integer value.
func (v *Value) Signed() (int64, error) {
	if v.typ.Kind != format.KindInt {
		return 0, types.Wrap(types.ErrTypeMismatch, fmt.Errorf("%s is not signed", v.typ.Name))
	}
	b, err := v.Bytes()
	if err != nil {
		return 0, err
	}
	i, ok := buf.Int(b, v.typ.Size, v.target.Arch().ByteOrder)
	if !ok {
		return 0, &types.Error{Kind: types.ErrKindFormat, Msg: fmt.Sprintf("%s: unsupported width %d", v.typ.Name, v.typ.Size)}
	}
	return i, nil
}

// Text decodes a char array value.
func (v *Value) Text() (string, error) {
	if v.typ.Kind != format.KindChars {
		return "", types.Wrap(types.ErrTypeMismatch, fmt.Errorf("%s is not a char array", v.typ.Name))
	}
	b, err := v.Bytes()
	if err != nil {
		return "", err
	}
	s, err := format.DecodeChars(b)
	if err != nil {
		return "", &types.Error{Kind: types.ErrKindFormat, Msg: v.name, Err: err}
	}
	return s, nil
}

// AddressOf returns a pointer to v. Only values located in memory have one.
func (v *Value) AddressOf() (*Value, error) {
	if !v.loc {
		return nil, &types.Error{Kind: types.ErrKindAddress, Msg: v.name + " has no address"}
	}
	return v.target.ValueFromUnsigned(v.name, v.addr, v.target.Types.PointerTo(v.typ)), nil
}

// Cast reinterprets v's storage as t. The storage must be at least t.Size
// bytes long.
func (v *Value) Cast(t *format.Type) (*Value, error) {
	if v.loc {
		return v.target.ValueAt(v.name, v.addr, t), nil
	}
	if len(v.data) < t.Size {
		return nil, types.Wrap(types.ErrTypeMismatch,
			fmt.Errorf("cannot cast %d-byte %s to %d-byte %s", len(v.data), v.typ.Name, t.Size, t.Name))
	}
	return v.target.ValueFromData(v.name, v.data, t), nil
}

// Dereference follows a pointer value to its pointee.
func (v *Value) Dereference() (*Value, error) {
	if v.typ.Kind != format.KindPointer || v.typ.Elem == nil {
		return nil, types.Wrap(types.ErrTypeMismatch, fmt.Errorf("%s is not a pointer", v.typ.Name))
	}
	elem := v.typ.Elem
	if elem.Kind == format.KindVoid || !elem.Complete() {
		return nil, types.Wrap(types.ErrTypeMismatch, fmt.Errorf("cannot dereference %s", v.typ.Name))
	}
	addr, err := v.Unsigned()
	if err != nil {
		return nil, err
	}
	if addr == 0 {
		return nil, types.ErrNullReference
	}
	return v.target.ValueAt(v.name, addr, elem), nil
}

// NumFields implements types.FieldSet. Non-struct values have no fields.
func (v *Value) NumFields() int {
	if v.typ.Kind != format.KindStruct {
		return 0
	}
	return len(v.typ.Fields)
}

// FieldName implements types.FieldSet.
func (v *Value) FieldName(i int) (string, bool) {
	if i < 0 || i >= v.NumFields() {
		return "", false
	}
	return v.typ.Fields[i].Name, true
}

// FieldValue implements types.FieldSet.
func (v *Value) FieldValue(i int) (types.Value, bool) {
	f, ok := v.Field(i)
	if !ok {
		return nil, false
	}
	return f, true
}

// Field returns member i as a concrete *Value.
func (v *Value) Field(i int) (*Value, bool) {
	if i < 0 || i >= v.NumFields() {
		return nil, false
	}
	f := v.typ.Fields[i]
	if v.loc {
		return v.target.ValueAt(f.Name, v.addr+uint64(f.Offset), f.Type), true
	}
	b, ok := buf.Slice(v.data, f.Offset, f.Type.Size)
	if !ok {
		return nil, false
	}
	return v.target.ValueFromData(f.Name, b, f.Type), true
}

// FieldByName returns the member called name.
func (v *Value) FieldByName(name string) (*Value, bool) {
	if v.typ.Kind != format.KindStruct {
		return nil, false
	}
	return v.Field(v.typ.FieldIndex(name))
}
