package mark

import (
	"fmt"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/pkg/types"
)

// Resolver turns decoded markable references into typed node views. The
// target type is fixed at construction; build a new Resolver to change it.
type Resolver struct {
	target   *Target
	typeName string
}

// Resolution is a resolved markable reference. Pointer is a typed pointer to
// the node, Node the node itself; both are the same whichever addressing case
// produced them.
type Resolution struct {
	Ref     Decoded
	Pointer *Value
	Node    *Value
}

// NewResolver returns a resolver for references to typeName nodes in tg.
func NewResolver(tg *Target, typeName string) *Resolver {
	return &Resolver{target: tg, typeName: typeName}
}

// TargetType returns the configured node type name.
func (r *Resolver) TargetType() string {
	return r.typeName
}

// Target returns the process the resolver reads from.
func (r *Resolver) Target() *Target {
	return r.target
}

// NodeType looks up the configured node type.
func (r *Resolver) NodeType() (*format.Type, error) {
	if r == nil || r.target == nil || r.target.Types == nil || r.typeName == "" {
		return nil, types.ErrTargetUnset
	}
	t, err := r.target.Types.Lookup(r.typeName)
	if err != nil {
		return nil, types.Wrap(types.ErrUnknownType, err)
	}
	if t.Kind == format.KindVoid || !t.Complete() {
		return nil, types.Wrap(types.ErrUnknownType, fmt.Errorf("%s is incomplete", t.Name))
	}
	return t, nil
}

// Resolve locates the node d refers to and labels it name.
//
// A marked reference still holds the address of a live node that has only
// been flagged, so the node is synthesized at that address and its address is
// taken for the typed pointer. An unmarked reference is an ordinary pointer:
// it is reinterpreted as a node pointer and dereferenced.
//
// Every failure comes back as a *types.Error: ErrTargetUnset or
// ErrUnknownType for configuration problems, ErrNullReference and
// ErrInaccessible for addressing problems. Nothing is cached; each call reads
// target memory afresh.
func (r *Resolver) Resolve(name string, d Decoded) (Resolution, error) {
	utype, err := r.NodeType()
	if err != nil {
		return Resolution{}, err
	}
	if d.IsNull() {
		return Resolution{}, types.ErrNullReference
	}
	ptrType := r.target.Types.PointerTo(utype)

	var node, ptr *Value
	if d.Marked {
		node = r.target.ValueAt(name, d.Address, utype)
		addr, err := node.AddressOf()
		if err != nil {
			return Resolution{}, err
		}
		if ptr, err = addr.Cast(ptrType); err != nil {
			return Resolution{}, err
		}
	} else {
		ptr = r.target.ValueFromUnsigned(name, d.Address, ptrType)
		if node, err = ptr.Dereference(); err != nil {
			return Resolution{}, err
		}
	}

	// Probe the node's bytes so an unmapped address fails here rather than
	// on the first field read.
	if _, err := node.Bytes(); err != nil {
		return Resolution{}, err
	}
	return Resolution{Ref: d, Pointer: ptr, Node: node}, nil
}

// ResolveRaw decodes raw and resolves it. Bits above the target's pointer
// width are dropped first, as a load of a pointer-sized variable would.
func (r *Resolver) ResolveRaw(name string, raw uint64) (Resolution, error) {
	if r != nil && r.target != nil && r.target.Types != nil {
		raw &= r.target.Arch().PointerMask()
	}
	return r.Resolve(name, Decode(raw))
}

// ResolveValue reads v's raw bits and resolves them under v's name.
func (r *Resolver) ResolveValue(v types.Value) (Resolution, error) {
	if isNilValue(v) {
		return Resolution{}, types.ErrNullReference
	}
	raw, err := v.Unsigned()
	if err != nil {
		return Resolution{}, types.Wrap(types.ErrInaccessible, err)
	}
	return r.Resolve(v.Name(), Decode(raw))
}
