package mark

import (
	"github.com/joshuapare/markview/internal/logger"
	"github.com/joshuapare/markview/pkg/types"
)

// State is where a Provider is in its inspection cycle.
type State uint8

const (
	StateUnresolved State = iota // no Update since creation or Invalidate
	StateResolved                // last Update produced a node
	StateFailed                  // last Update could not resolve
)

// String implements the Stringer interface for State.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Provider presents one markable reference to an inspection host as if it
// were a plain typed pointer. Structural queries resolve lazily on first use
// and never fail; an unresolved reference simply has no children.
//
// A Provider is not safe for concurrent use. Hosts call it one query at a
// time.
type Provider struct {
	valobj   types.Value
	resolver *Resolver

	state    State
	res      Resolution
	children Children
	err      error
}

// NewProvider returns a provider for valobj, a value holding raw markable
// bits, resolved through r.
func NewProvider(valobj types.Value, r *Resolver) *Provider {
	if isNilValue(valobj) {
		valobj = nil
	}
	return &Provider{valobj: valobj, resolver: r}
}

// Update re-reads the raw bits and resolves them from scratch.
func (p *Provider) Update() {
	p.res, p.children, p.err = Resolution{}, Children{}, nil

	if p.valobj == nil {
		p.fail(types.ErrNullReference)
		return
	}
	if p.resolver == nil {
		p.fail(types.ErrTargetUnset)
		return
	}
	res, err := p.resolver.ResolveValue(p.valobj)
	if err != nil {
		p.fail(err)
		return
	}
	p.res = res
	p.children = NewChildren(res.Pointer, res.Node)
	p.state = StateResolved
}

// Invalidate drops the resolved node; the next query resolves again.
func (p *Provider) Invalidate() {
	p.state = StateUnresolved
	p.res, p.children, p.err = Resolution{}, Children{}, nil
}

// NumChildren returns the node's field count.
func (p *Provider) NumChildren() int {
	p.ensure()
	return p.children.Count()
}

// ChildIndex returns the position of the named field, or NotFound.
func (p *Provider) ChildIndex(name string) int {
	p.ensure()
	return p.children.IndexOf(name)
}

// ChildAtIndex returns field i of the node.
func (p *Provider) ChildAtIndex(i int) (types.Value, bool) {
	p.ensure()
	return p.children.At(i)
}

// HasChildren reports whether the reference expands to any field.
func (p *Provider) HasChildren() bool {
	p.ensure()
	return p.children.HasChildren()
}

// Summary returns the one-line display string for the reference. It decodes
// the raw bits itself and never touches the node.
func (p *Provider) Summary() string {
	if p.valobj == nil {
		return Summary(0)
	}
	return SummaryOf(p.valobj)
}

// State returns the current cycle state.
func (p *Provider) State() State {
	return p.state
}

// Err returns why the last Update failed, or nil.
func (p *Provider) Err() error {
	return p.err
}

// Resolution returns the resolved node, if the last Update succeeded.
func (p *Provider) Resolution() (Resolution, bool) {
	p.ensure()
	return p.res, p.state == StateResolved
}

func (p *Provider) ensure() {
	if p.state == StateUnresolved {
		p.Update()
	}
}

func (p *Provider) fail(err error) {
	p.err = err
	p.state = StateFailed
	name := ""
	if p.valobj != nil {
		name = p.valobj.Name()
	}
	logger.Debug("markable reference unresolved",
		"name", name,
		"summary", p.Summary(),
		"err", err)
}
