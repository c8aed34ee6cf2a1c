package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertionOrder(t *testing.T) {
	tbl := New()
	names := []string{"F_BOLD_ON", "F_BOLD_OFF", "C_FOO"}
	for _, n := range names {
		tbl.Insert(n)
	}
	all := tbl.All()
	require.Len(t, all, len(names))
	for i, e := range all {
		assert.Equal(t, names[i], e.Name)
	}
}

func TestSetOverwritesSilently(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Set("x", []byte{1, 2}))
	require.NoError(t, tbl.Set("x", []byte{3}))

	e, ok := tbl.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, []byte{3}, e.Bytes())
	assert.Equal(t, 1, tbl.Len(), "overwrite should not add a new entry")
}

func TestValueTooLong(t *testing.T) {
	tbl := New()
	big := make([]byte, MaxValueLen+1)
	assert.Error(t, tbl.Set("x", big))
}

func TestClear(t *testing.T) {
	tbl := New()
	tbl.Insert("a")
	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
	_, ok := tbl.Lookup("a")
	assert.False(t, ok)
}
