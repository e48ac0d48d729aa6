// Package printer renders values as trees, the way a debugger's variable view
// shows them: one line per value, synthetic children first, then plain struct
// members.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/mark"
	"github.com/joshuapare/markview/mark/host"
	"github.com/joshuapare/markview/pkg/types"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one "(type) name = value summary" line per value.
	FormatText Format = "text"

	// FormatJSON outputs the same tree as nested JSON objects.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level.
	// Default: 2
	IndentSize int

	// MaxDepth limits how many levels are printed (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowTypes includes the type name of each value.
	// Default: true
	ShowTypes bool

	// ShowAddresses includes the location of values that live in memory.
	// Default: false
	ShowAddresses bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		ShowTypes:     true,
		ShowAddresses: false,
	}
}

// Printer handles formatted output of values.
type Printer struct {
	opts    Options
	writer  io.Writer
	session *host.Session
}

// New creates a new Printer.
//
// The Session supplies summaries, display formats and synthetic children, the
// Writer receives the output, and Options controls formatting behavior.
//
// Example:
//
//	s, _ := host.NewDefaultSession(tg, cfg)
//	p := printer.New(s, os.Stdout, printer.DefaultOptions())
//	p.PrintValue(v)
func New(s *host.Session, w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{session: s, writer: w, opts: opts}
}

// PrintValue prints v and everything it expands to. Unreadable values print
// as unavailable; only write errors are returned.
func (p *Printer) PrintValue(v types.Value) error {
	root := p.build(v, 0, make(map[uint64]bool))
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(root)
	default:
		return p.printText(root)
	}
}

// node is one rendered value.
type node struct {
	name     string
	typeName string
	addr     uint64
	located  bool
	display  string
	summary  string
	repeated bool
	children []*node
}

func (p *Printer) build(v types.Value, depth int, visited map[uint64]bool) *node {
	n := &node{
		name:     v.Name(),
		typeName: v.TypeName(),
		display:  p.session.Display(v),
	}
	n.addr, n.located = v.Location()
	if s, ok := p.session.Summary(v); ok {
		n.summary = s
	}
	if p.opts.MaxDepth > 0 && depth+1 >= p.opts.MaxDepth {
		return n
	}

	if sp, ok := p.session.Synthetic(v); ok {
		if !sp.HasChildren() {
			return n
		}
		// Synthetic providers present pointer-like values; the pointee address
		// is the raw value with the mark cleared.
		if raw, err := v.Unsigned(); err == nil {
			target := mark.Decode(raw).Address
			if visited[target] {
				n.repeated = true
				return n
			}
			visited[target] = true
		}
		for i := 0; i < sp.NumChildren(); i++ {
			c, ok := sp.ChildAtIndex(i)
			if !ok {
				continue
			}
			n.children = append(n.children, p.build(c, depth+1, visited))
		}
		return n
	}

	mv, ok := v.(*mark.Value)
	if !ok {
		return n
	}
	switch mv.Type().Kind {
	case format.KindStruct:
		if n.located {
			visited[n.addr] = true
		}
		p.appendFields(n, mv, depth, visited)
	case format.KindPointer:
		pointee, err := mv.Dereference()
		if err != nil || pointee.Type().Kind != format.KindStruct {
			return n
		}
		addr, _ := pointee.Location()
		if visited[addr] {
			n.repeated = true
			return n
		}
		visited[addr] = true
		p.appendFields(n, pointee, depth, visited)
	}
	return n
}

func (p *Printer) appendFields(n *node, fs types.FieldSet, depth int, visited map[uint64]bool) {
	for i := 0; i < fs.NumFields(); i++ {
		c, ok := fs.FieldValue(i)
		if !ok {
			continue
		}
		n.children = append(n.children, p.build(c, depth+1, visited))
	}
}

func (n *node) location() string {
	if !n.located {
		return ""
	}
	return fmt.Sprintf("0x%x", n.addr)
}
