package mark

import (
	"errors"
	"fmt"

	"github.com/joshuapare/markview/internal/logger"
	"github.com/joshuapare/markview/pkg/types"
)

// ErrCycle indicates a chain that returned to a node it already visited.
var ErrCycle = errors.New("mark: chain revisits a node")

// Link is one node reached while walking a chain of markable references.
type Link struct {
	Ref  Decoded // reference the node was reached through
	Node *Value
	Next Decoded // the node's own link
}

// Deleted reports whether the node's own link carries the mark, i.e. the
// node is logically deleted.
func (l Link) Deleted() bool {
	return l.Next.Marked
}

// Chain follows the markable field called field from node to node, starting
// at raw. It stops at a null link or after limit nodes (limit <= 0 means no
// limit). The links gathered so far are returned alongside any error.
func Chain(r *Resolver, raw uint64, field string, limit int) ([]Link, error) {
	var links []Link
	seen := make(map[uint64]bool)
	d := Decode(raw)
	for !d.IsNull() {
		if limit > 0 && len(links) >= limit {
			break
		}
		if seen[d.Address] {
			return links, fmt.Errorf("%w: %s", ErrCycle, Summary(d.Raw()))
		}
		seen[d.Address] = true

		res, err := r.Resolve(fmt.Sprintf("[%d]", len(links)), d)
		if err != nil {
			logger.Debug("chain stopped", "at", Summary(d.Raw()), "err", err)
			return links, err
		}
		next, ok := res.Node.FieldByName(field)
		if !ok {
			return links, types.Wrap(types.ErrNoSuchField, fmt.Errorf("%s has no field %q", res.Node.TypeName(), field))
		}
		nraw, err := next.Unsigned()
		if err != nil {
			return links, err
		}
		links = append(links, Link{Ref: d, Node: res.Node, Next: Decode(nraw)})
		d = Decode(nraw)
	}
	return links, nil
}
