package mark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/internal/testutil"
	"github.com/joshuapare/markview/pkg/types"
)

// newFixtureTarget returns the LP64 fixture heap with the builtin layouts.
func newFixtureTarget(t *testing.T) *Target {
	t.Helper()
	return NewTarget(testutil.ListImage(t), format.NewBuiltinRegistry(format.LP64))
}

// fieldUnsigned reads field name of a resolved node.
func fieldUnsigned(t *testing.T, fs types.FieldSet, name string) uint64 {
	t.Helper()
	for i := 0; i < fs.NumFields(); i++ {
		n, ok := fs.FieldName(i)
		require.True(t, ok)
		if n != name {
			continue
		}
		v, ok := fs.FieldValue(i)
		require.True(t, ok)
		u, err := v.Unsigned()
		require.NoError(t, err)
		return u
	}
	t.Fatalf("field %q not found", name)
	return 0
}

// failingMemory rejects every read.
type failingMemory struct{}

func (failingMemory) ReadAt(addr uint64, n int) ([]byte, error) {
	return nil, types.ErrInaccessible
}
