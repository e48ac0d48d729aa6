// Package host is the inspection-host surface of markview: it carries the
// session configuration (which node type markable references point at) and
// binds summary, synthetic-children and display-format handlers to type tags.
//
// Install wires the markable_ptr_t tag the same way a debugger formatter
// script registers a pointer format, a summary function and a synthetic
// child provider for the type.
package host

import (
	"errors"
	"fmt"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/internal/logger"
	"github.com/joshuapare/markview/mark"
	"github.com/joshuapare/markview/pkg/types"
)

// ErrInvalidBinding indicates a registration with an empty tag or nil handler.
var ErrInvalidBinding = errors.New("host: invalid binding")

// DisplayFormat selects how a scalar value's own text is rendered.
type DisplayFormat int

const (
	FormatDefault DisplayFormat = iota // decimal for integers, hex for pointers
	FormatPointer                      // zero-padded pointer literal
	FormatHex                          // 0x-prefixed hex without padding
)

// String implements the Stringer interface for DisplayFormat.
func (f DisplayFormat) String() string {
	switch f {
	case FormatPointer:
		return "pointer"
	case FormatHex:
		return "hex"
	default:
		return "default"
	}
}

// SummaryFunc renders the one-line summary of a value.
type SummaryFunc func(v types.Value) string

// SyntheticProvider is the structural-query contract a host drives.
type SyntheticProvider interface {
	Update()
	NumChildren() int
	ChildIndex(name string) int
	ChildAtIndex(i int) (types.Value, bool)
	HasChildren() bool
}

// SyntheticFactory creates a provider for one value of a bound type.
type SyntheticFactory func(v types.Value, r *mark.Resolver) SyntheticProvider

// Config is the per-session configuration.
type Config struct {
	// TargetType names the node type markable references point at. Empty
	// means unset: references display but never expand.
	TargetType string
	// Arch is the data model of the inspected process.
	Arch format.Arch
}

// DefaultConfig returns a configuration for an LP64 target with no node type.
func DefaultConfig() Config {
	return Config{Arch: format.LP64}
}

// Session holds one inspection session: the target, its configuration and
// the handlers bound to type tags.
type Session struct {
	target     *mark.Target
	cfg        Config
	generation uint64

	summaries  map[string]SummaryFunc
	synthetics map[string]SyntheticFactory
	formats    map[string]DisplayFormat
}

// NewSession returns a session over tg with no bindings.
func NewSession(tg *mark.Target, cfg Config) *Session {
	return &Session{
		target:     tg,
		cfg:        cfg,
		summaries:  make(map[string]SummaryFunc),
		synthetics: make(map[string]SyntheticFactory),
		formats:    make(map[string]DisplayFormat),
	}
}

// Target returns the inspected process.
func (s *Session) Target() *mark.Target {
	return s.target
}

// Config returns the current configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// SetTargetType changes the node type and invalidates every provider handed
// out before the change.
func (s *Session) SetTargetType(name string) {
	if name == s.cfg.TargetType {
		return
	}
	logger.Debug("target type changed", "from", s.cfg.TargetType, "to", name)
	s.cfg.TargetType = name
	s.Invalidate()
}

// Invalidate signals that target state may have changed (the process ran, a
// value was edited). Providers from earlier generations re-resolve on their
// next query.
func (s *Session) Invalidate() {
	s.generation++
}

// Generation counts invalidations since the session started.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Resolver returns a resolver for the current target type.
func (s *Session) Resolver() *mark.Resolver {
	return mark.NewResolver(s.target, s.cfg.TargetType)
}

// AddSummary binds fn as the summary for values tagged tag.
func (s *Session) AddSummary(tag string, fn SummaryFunc) error {
	if tag == "" || fn == nil {
		return fmt.Errorf("%w: summary for %q", ErrInvalidBinding, tag)
	}
	s.summaries[tag] = fn
	return nil
}

// AddSynthetic binds f as the synthetic child provider for values tagged tag.
func (s *Session) AddSynthetic(tag string, f SyntheticFactory) error {
	if tag == "" || f == nil {
		return fmt.Errorf("%w: synthetic for %q", ErrInvalidBinding, tag)
	}
	s.synthetics[tag] = f
	return nil
}

// AddFormat binds a display format to values tagged tag.
func (s *Session) AddFormat(tag string, f DisplayFormat) error {
	if tag == "" {
		return fmt.Errorf("%w: format for %q", ErrInvalidBinding, tag)
	}
	s.formats[tag] = f
	return nil
}

// Summary returns the bound summary for v.
func (s *Session) Summary(v types.Value) (string, bool) {
	fn, ok := s.summaries[v.TypeName()]
	if !ok {
		return "", false
	}
	return fn(v), true
}

// Format returns the display format bound to v's type.
func (s *Session) Format(v types.Value) DisplayFormat {
	return s.formats[v.TypeName()]
}

// Synthetic returns a provider for v when its type has one bound. The
// provider is tied to the current generation: after SetTargetType or
// Invalidate it re-resolves against the new configuration.
func (s *Session) Synthetic(v types.Value) (SyntheticProvider, bool) {
	f, ok := s.synthetics[v.TypeName()]
	if !ok {
		return nil, false
	}
	return &tracked{session: s, value: v, factory: f}, true
}

// tracked rebuilds its provider whenever the session generation moves on.
type tracked struct {
	session    *Session
	value      types.Value
	factory    SyntheticFactory
	inner      SyntheticProvider
	generation uint64
}

func (t *tracked) current() SyntheticProvider {
	if t.inner == nil || t.generation != t.session.generation {
		t.inner = t.factory(t.value, t.session.Resolver())
		t.generation = t.session.generation
	}
	return t.inner
}

func (t *tracked) Update()                                { t.current().Update() }
func (t *tracked) NumChildren() int                       { return t.current().NumChildren() }
func (t *tracked) ChildIndex(name string) int             { return t.current().ChildIndex(name) }
func (t *tracked) ChildAtIndex(i int) (types.Value, bool) { return t.current().ChildAtIndex(i) }
func (t *tracked) HasChildren() bool                      { return t.current().HasChildren() }
