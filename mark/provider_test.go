package mark

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/internal/logger"
	"github.com/joshuapare/markview/internal/testutil"
	"github.com/joshuapare/markview/pkg/types"
)

func newMarkable(t *testing.T, tg *Target, raw uint64) *Value {
	t.Helper()
	v, err := tg.Markable("link", raw)
	require.NoError(t, err)
	return v
}

func TestProvider_ResolvesLazily(t *testing.T) {
	tg := newFixtureTarget(t)
	p := NewProvider(newMarkable(t, tg, testutil.NodeB|1), NewResolver(tg, format.LockFreeListNode))
	require.Equal(t, StateUnresolved, p.State())

	require.Equal(t, "0x1020*", p.Summary())
	require.Equal(t, StateUnresolved, p.State(), "summary does not touch the node")

	require.True(t, p.HasChildren())
	require.Equal(t, StateResolved, p.State())
	require.NoError(t, p.Err())
	require.Equal(t, 4, p.NumChildren())
	require.Equal(t, 1, p.ChildIndex("_next_d"))

	v, ok := p.ChildAtIndex(2)
	require.True(t, ok)
	k, err := v.Unsigned()
	require.NoError(t, err)
	require.Equal(t, uint64(20), k)

	res, ok := p.Resolution()
	require.True(t, ok)
	require.True(t, res.Ref.Marked)
}

// Failure containment: with no target type every query returns its empty value.
func TestProvider_TargetUnsetIsInert(t *testing.T) {
	tg := newFixtureTarget(t)
	for _, r := range []*Resolver{NewResolver(tg, ""), nil} {
		p := NewProvider(newMarkable(t, tg, testutil.NodeA), r)

		require.False(t, p.HasChildren())
		require.Equal(t, 0, p.NumChildren())
		require.Equal(t, NotFound, p.ChildIndex("_key"))
		_, ok := p.ChildAtIndex(0)
		require.False(t, ok)
		require.Equal(t, "0x1000", p.Summary())

		require.Equal(t, StateFailed, p.State())
		require.ErrorIs(t, p.Err(), types.ErrTargetUnset)
		_, ok = p.Resolution()
		require.False(t, ok)
	}
}

func TestProvider_FailuresAreInert(t *testing.T) {
	tg := newFixtureTarget(t)
	long, err := tg.Types.Lookup("long")
	require.NoError(t, err)

	tests := []struct {
		name   string
		valobj types.Value
		want   *types.Error
	}{
		{"null", newMarkable(t, tg, 0), types.ErrNullReference},
		{"marked null", newMarkable(t, tg, NullMarked), types.ErrNullReference},
		{"unmapped", newMarkable(t, tg, testutil.Unmapped|1), types.ErrInaccessible},
		{"unreadable raw", tg.ValueAt("far", testutil.Unmapped, long), types.ErrInaccessible},
		{"nil value", nil, types.ErrNullReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(tt.valobj, NewResolver(tg, format.LockFreeListNode))
			require.False(t, p.HasChildren())
			require.Equal(t, 0, p.NumChildren())
			require.Equal(t, NotFound, p.ChildIndex("_key"))
			_, ok := p.ChildAtIndex(0)
			require.False(t, ok)
			require.Equal(t, StateFailed, p.State())
			require.ErrorIs(t, p.Err(), tt.want)
			require.NotEmpty(t, p.Summary())
		})
	}
}

func TestProvider_InvalidateRecomputes(t *testing.T) {
	img := testutil.ListImage(t)
	tg := NewTarget(img, format.NewBuiltinRegistry(format.LP64))
	nodeType, err := tg.Types.Lookup(format.LockFreeListNode)
	require.NoError(t, err)

	// The markable value lives in target memory: NodeA's link.
	link, ok := tg.ValueAt("a", testutil.NodeA, nodeType).FieldByName(format.NextField)
	require.True(t, ok)
	p := NewProvider(link, NewResolver(tg, format.LockFreeListNode))
	require.Equal(t, 2, p.ChildIndex("_key"))
	v, _ := p.ChildAtIndex(2)
	k, _ := v.Unsigned()
	require.Equal(t, uint64(20), k)

	// Retarget the link at NodeC (unmarked) behind the provider's back.
	seg := img.Segments()[0]
	seg.Data[testutil.NodeA-testutil.HeapBase+8] = byte(testutil.NodeC & 0xff)

	require.Equal(t, StateResolved, p.State(), "no implicit refresh")
	p.Invalidate()
	require.Equal(t, StateUnresolved, p.State())

	v, ok = p.ChildAtIndex(2)
	require.True(t, ok)
	k, _ = v.Unsigned()
	require.Equal(t, uint64(30), k)
	require.Equal(t, "0x1040", p.Summary())
}

func TestProvider_UpdateIsIdempotent(t *testing.T) {
	tg := newFixtureTarget(t)
	p := NewProvider(newMarkable(t, tg, testutil.NodeC), NewResolver(tg, format.LockFreeListNode))

	p.Update()
	first, ok := p.Resolution()
	require.True(t, ok)
	p.Update()
	second, ok := p.Resolution()
	require.True(t, ok)

	require.Equal(t, first.Ref, second.Ref)
	require.Equal(t, first.Node.NumFields(), second.Node.NumFields())
	require.NotSame(t, first.Node, second.Node, "each update builds a fresh node view")
}

func TestProvider_LogsFailuresAtDebug(t *testing.T) {
	var out bytes.Buffer
	_, err := logger.Init(logger.Options{Enabled: true, Writer: &out, Level: slog.LevelDebug})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = logger.Init(logger.Options{}) })

	tg := newFixtureTarget(t)
	p := NewProvider(newMarkable(t, tg, testutil.Unmapped), NewResolver(tg, format.LockFreeListNode))
	require.False(t, p.HasChildren())
	require.Contains(t, out.String(), "markable reference unresolved")
	require.Contains(t, out.String(), "summary=0x9000")
}

func TestState_String(t *testing.T) {
	require.Equal(t, "unresolved", StateUnresolved.String())
	require.Equal(t, "resolved", StateResolved.String())
	require.Equal(t, "failed", StateFailed.String())
	require.Equal(t, "unknown", State(9).String())
}

func TestProvider_TypedNilValueIsInert(t *testing.T) {
	tg := newFixtureTarget(t)
	p := NewProvider((*Value)(nil), NewResolver(tg, format.LockFreeListNode))

	require.NotPanics(t, func() {
		require.False(t, p.HasChildren())
	})
	require.Equal(t, StateFailed, p.State())
	require.ErrorIs(t, p.Err(), types.ErrNullReference)
	require.Zero(t, p.NumChildren())
	require.Equal(t, "0x0", p.Summary())
}
