package format

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LayoutFile describes additional struct layouts. JSON documents parse as
// well, since JSON is a subset of YAML.
//
// Example:
//
//	arch: lp64
//	aliases:
//	  Node: _Node
//	types:
//	  - name: _Node
//	    fields:
//	      - {name: _next_d, type: markable_ptr_t}
//	      - {name: _key, type: long}
//	      - {name: _label, type: "char[16]", offset: 16}
type LayoutFile struct {
	Arch    string            `yaml:"arch,omitempty"`
	Aliases map[string]string `yaml:"aliases,omitempty"`
	Types   []StructLayout    `yaml:"types"`
}

// StructLayout is one struct entry of a LayoutFile.
type StructLayout struct {
	Name   string        `yaml:"name"`
	Size   int           `yaml:"size,omitempty"`
	Fields []FieldLayout `yaml:"fields"`
}

// FieldLayout is one member of a StructLayout.
type FieldLayout struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Offset *int   `yaml:"offset,omitempty"`
}

// ParseLayout decodes a layout document.
func ParseLayout(data []byte) (*LayoutFile, error) {
	var lf LayoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	for i, st := range lf.Types {
		if st.Name == "" {
			return nil, fmt.Errorf("layout: type #%d: %w: missing name", i, ErrInvalidLayout)
		}
		for j, f := range st.Fields {
			if f.Name == "" || f.Type == "" {
				return nil, fmt.Errorf("layout: %s field #%d: %w: name and type are required",
					st.Name, j, ErrInvalidLayout)
			}
		}
	}
	return &lf, nil
}

// LoadLayoutFile reads and decodes the layout document at path.
func LoadLayoutFile(path string) (*LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return ParseLayout(data)
}

// Apply registers every struct and alias of lf in r. All struct names are
// declared before any is defined, so members may point at structs that appear
// later in the file, and aliases may name other aliases. The document is
// applied to a copy of r, so a failed Apply leaves r unchanged.
func (lf *LayoutFile) Apply(r *Registry) error {
	if lf.Arch != "" {
		arch, err := ParseArch(lf.Arch)
		if err != nil {
			return fmt.Errorf("layout: %w", err)
		}
		if arch.Name != r.Arch().Name {
			return fmt.Errorf("layout: written for %s, registry is %s", arch, r.Arch())
		}
	}

	scratch := r.clone()
	for _, st := range lf.Types {
		if _, err := scratch.Declare(st.Name); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
	}
	for _, st := range lf.Types {
		members := make([]Member, len(st.Fields))
		for i, f := range st.Fields {
			members[i] = Member{Name: f.Name, Type: f.Type, Offset: f.Offset}
		}
		if _, err := scratch.DefineStruct(st.Name, members, st.Size); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
	}
	if err := applyAliases(scratch, lf.Aliases); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	*r = *scratch
	return nil
}

// applyAliases adds aliases in passes, in name order, until every alias whose
// target exists has been added. An alias left over after a pass that added
// nothing names a type that never appears.
func applyAliases(r *Registry, aliases map[string]string) error {
	pending := make([]string, 0, len(aliases))
	for name := range aliases {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for len(pending) > 0 {
		var next []string
		for _, name := range pending {
			if _, err := r.Lookup(aliases[name]); err != nil {
				next = append(next, name)
				continue
			}
			if err := r.Alias(name, aliases[name]); err != nil {
				return err
			}
		}
		if len(next) == len(pending) {
			name := next[0]
			return fmt.Errorf("alias %s: %w: %q", name, ErrTypeNotFound, aliases[name])
		}
		pending = next
	}
	return nil
}
