package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Registry maps type names to layouts for one Arch. It plays the role of the
// debugger's "find first type by name" lookup.
type Registry struct {
	arch  Arch
	types map[string]*Type
	ptrs  map[*Type]*Type
	chars map[int]*Type
}

// Member describes a struct field for DefineStruct. A nil Offset places the
// field at the next naturally aligned position.
type Member struct {
	Name   string
	Type   string
	Offset *int
}

// NewRegistry returns a registry holding the C scalar types for arch.
func NewRegistry(arch Arch) *Registry {
	r := &Registry{
		arch:  arch,
		types: make(map[string]*Type),
		ptrs:  make(map[*Type]*Type),
		chars: make(map[int]*Type),
	}
	p := arch.PointerSize
	scalars := []struct {
		name string
		kind Kind
		size int
	}{
		{"char", KindInt, 1},
		{"signed char", KindInt, 1},
		{"unsigned char", KindUint, 1},
		{"bool", KindUint, 1},
		{"_Bool", KindUint, 1},
		{"short", KindInt, 2},
		{"unsigned short", KindUint, 2},
		{"int", KindInt, 4},
		{"unsigned int", KindUint, 4},
		{"long", KindInt, p},
		{"unsigned long", KindUint, p},
		{"long long", KindInt, 8},
		{"unsigned long long", KindUint, 8},
		{"int8_t", KindInt, 1},
		{"uint8_t", KindUint, 1},
		{"int16_t", KindInt, 2},
		{"uint16_t", KindUint, 2},
		{"int32_t", KindInt, 4},
		{"uint32_t", KindUint, 4},
		{"int64_t", KindInt, 8},
		{"uint64_t", KindUint, 8},
		{"size_t", KindUint, p},
		{"ssize_t", KindInt, p},
		{"intptr_t", KindInt, p},
		{"uintptr_t", KindUint, p},
		{"markable_ptr_t", KindMarkable, p},
	}
	for _, s := range scalars {
		r.types[s.name] = &Type{Name: s.name, Kind: s.kind, Size: s.size, Align: s.size, complete: true}
	}
	r.types["void"] = &Type{Name: "void", Kind: KindVoid, Size: 0, Align: 1, complete: true}
	return r
}

// Arch returns the data model the registry's sizes were computed for.
func (r *Registry) Arch() Arch {
	return r.arch
}

// Register adds t under t.Name. Scalars and chars are complete on arrival;
// structs are validated first.
func (r *Registry) Register(t *Type) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("%w: unnamed type", ErrInvalidLayout)
	}
	if _, ok := r.types[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
	}
	if t.Kind == KindStruct {
		if err := validateStruct(t); err != nil {
			return err
		}
	}
	t.complete = true
	r.types[t.Name] = t
	return nil
}

// Alias makes name resolve to the same layout as target (a C typedef).
func (r *Registry) Alias(name, target string) error {
	if _, ok := r.types[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	t, err := r.Lookup(target)
	if err != nil {
		return fmt.Errorf("alias %s: %w", name, err)
	}
	r.types[name] = t
	return nil
}

// Declare registers an incomplete struct so that other layouts, including its
// own members, can refer to it by pointer before DefineStruct runs. Declaring
// an existing struct returns it unchanged.
func (r *Registry) Declare(name string) (*Type, error) {
	if t, ok := r.types[name]; ok {
		if t.Kind != KindStruct {
			return nil, fmt.Errorf("%w: %s is a %s", ErrDuplicateType, name, t.Kind)
		}
		return t, nil
	}
	t := &Type{Name: name, Kind: KindStruct}
	r.types[name] = t
	return t, nil
}

// DefineStruct lays out members and completes the struct called name. Offsets
// that are not given follow natural alignment; size defaults to the end of the
// last member rounded up to the struct's alignment.
func (r *Registry) DefineStruct(name string, members []Member, size int) (*Type, error) {
	t, err := r.Declare(name)
	if err != nil {
		return nil, err
	}
	if t.complete {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}

	fields := make([]Field, 0, len(members))
	next, align := 0, 1
	for _, m := range members {
		ft, err := r.Lookup(m.Type)
		if err != nil {
			return nil, fmt.Errorf("struct %s field %s: %w", name, m.Name, err)
		}
		if ft == t || !ft.complete || ft.Kind == KindVoid {
			return nil, fmt.Errorf("%w: struct %s field %s has incomplete type %s",
				ErrInvalidLayout, name, m.Name, ft.Name)
		}
		off := AlignUp(next, ft.Align)
		if m.Offset != nil {
			off = *m.Offset
		}
		fields = append(fields, Field{Name: m.Name, Offset: off, Type: ft})
		next = max(next, off+ft.Size)
		align = max(align, ft.Align)
	}
	if size == 0 {
		size = AlignUp(next, align)
	}

	candidate := &Type{Name: name, Kind: KindStruct, Size: size, Align: align, Fields: fields}
	if err := validateStruct(candidate); err != nil {
		return nil, err
	}
	t.Size, t.Align, t.Fields = candidate.Size, candidate.Align, candidate.Fields
	t.complete = true
	return t, nil
}

// Lookup resolves name to a layout. Besides registered names it understands
// "T *" (pointer to T), "struct T" and "char[N]".
func (r *Registry) Lookup(name string) (*Type, error) {
	name = strings.TrimSpace(name)
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	if strings.HasSuffix(name, "*") {
		elem, err := r.Lookup(strings.TrimSuffix(name, "*"))
		if err != nil {
			return nil, err
		}
		return r.PointerTo(elem), nil
	}
	if rest, ok := strings.CutPrefix(name, "struct "); ok {
		return r.Lookup(rest)
	}
	if n, ok := parseCharArray(name); ok {
		return r.charArray(n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
}

// PointerTo returns the pointer type whose pointee is elem.
func (r *Registry) PointerTo(elem *Type) *Type {
	if p, ok := r.ptrs[elem]; ok {
		return p
	}
	p := &Type{
		Name:     elem.Name + " *",
		Kind:     KindPointer,
		Size:     r.arch.PointerSize,
		Align:    r.arch.PointerSize,
		Elem:     elem,
		complete: true,
	}
	r.ptrs[elem] = p
	return p
}

// clone returns a registry sharing r's existing layouts. Names added to the
// clone do not appear in r. A struct r declared but never defined is shared,
// so defining it in the clone completes it in r as well.
func (r *Registry) clone() *Registry {
	c := &Registry{
		arch:  r.arch,
		types: make(map[string]*Type, len(r.types)),
		ptrs:  make(map[*Type]*Type, len(r.ptrs)),
		chars: make(map[int]*Type, len(r.chars)),
	}
	for k, v := range r.types {
		c.types[k] = v
	}
	for k, v := range r.ptrs {
		c.ptrs[k] = v
	}
	for k, v := range r.chars {
		c.chars[k] = v
	}
	return c
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Structs lists the complete struct layouts, sorted by name. Typedef aliases
// are listed under their own names.
func (r *Registry) Structs() []string {
	var names []string
	for n, t := range r.types {
		if t.Kind == KindStruct && t.complete {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Registry) charArray(n int) *Type {
	if t, ok := r.chars[n]; ok {
		return t
	}
	t := &Type{Name: fmt.Sprintf("char[%d]", n), Kind: KindChars, Size: n, Align: 1, complete: true}
	r.chars[n] = t
	return t
}

func parseCharArray(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "char[")
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, "]")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func validateStruct(t *Type) error {
	if t.Size < 0 {
		return fmt.Errorf("%w: struct %s has negative size", ErrInvalidLayout, t.Name)
	}
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: struct %s has an unnamed field", ErrInvalidLayout, t.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: struct %s repeats field %s", ErrInvalidLayout, t.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Type == nil {
			return fmt.Errorf("%w: struct %s field %s has no type", ErrInvalidLayout, t.Name, f.Name)
		}
		if f.Offset < 0 || f.Offset+f.Type.Size > t.Size {
			return fmt.Errorf("%w: struct %s field %s at %d+%d exceeds size %d",
				ErrInvalidLayout, t.Name, f.Name, f.Offset, f.Type.Size, t.Size)
		}
	}
	return nil
}
