package printer

import (
	"bufio"
	"strings"
)

// printText writes the tree one value per line.
func (p *Printer) printText(root *node) error {
	w := bufio.NewWriter(p.writer)
	p.writeTextNode(w, root, 0)
	return w.Flush()
}

func (p *Printer) writeTextNode(w *bufio.Writer, n *node, depth int) {
	w.WriteString(strings.Repeat(" ", depth*p.opts.IndentSize))

	// Format: (type) name = display summary
	if p.opts.ShowTypes {
		w.WriteString("(" + n.typeName + ") ")
	}
	w.WriteString(n.name)
	w.WriteString(" = ")
	w.WriteString(n.display)
	if n.summary != "" {
		w.WriteString(" " + n.summary)
	}
	if p.opts.ShowAddresses && n.located {
		w.WriteString(" @ " + n.location())
	}
	if n.repeated {
		w.WriteString(" (already shown)")
	}
	w.WriteByte('\n')

	for _, c := range n.children {
		p.writeTextNode(w, c, depth+1)
	}
}
