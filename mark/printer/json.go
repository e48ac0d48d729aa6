package printer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// jsonValue represents a value in JSON format.
type jsonValue struct {
	Name     string      `json:"name"`
	Type     string      `json:"type,omitempty"`
	Address  string      `json:"address,omitempty"`
	Value    string      `json:"value"`
	Summary  string      `json:"summary,omitempty"`
	Repeated bool        `json:"repeated,omitempty"`
	Children []jsonValue `json:"children,omitempty"`
}

// printJSON writes the tree as one indented JSON document.
func (p *Printer) printJSON(root *node) error {
	data, err := json.MarshalIndent(p.toJSON(root), "", strings.Repeat(" ", p.opts.IndentSize))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

func (p *Printer) toJSON(n *node) jsonValue {
	jv := jsonValue{
		Name:     n.name,
		Value:    n.display,
		Summary:  n.summary,
		Repeated: n.repeated,
	}
	if p.opts.ShowTypes {
		jv.Type = n.typeName
	}
	if p.opts.ShowAddresses {
		jv.Address = n.location()
	}
	for _, c := range n.children {
		jv.Children = append(jv.Children, p.toJSON(c))
	}
	return jv
}
