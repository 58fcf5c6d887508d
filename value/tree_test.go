package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeConstructs(t *testing.T) {
	var tr Tree
	obj := tr.NewObject()
	require.NoError(t, tr.SetKey(obj, "n", tr.Number(42)))
	require.NoError(t, tr.SetKey(obj, "s", tr.String("x")))
	require.NoError(t, tr.SetKey(obj, "z", tr.Null()))

	arr := tr.NewArray()
	require.NoError(t, tr.SetIndex(arr, 0, tr.Bool(true)))
	require.NoError(t, tr.SetIndex(arr, 1, tr.Bool(false)))
	require.NoError(t, tr.SetKey(obj, "a", arr))

	assert.Equal(t, KindObject, tr.Kind(obj))
	assert.Equal(t, []string{"n", "s", "z", "a"}, tr.Keys(obj))

	n, ok := tr.GetKey(obj, "n")
	require.True(t, ok)
	assert.Equal(t, 42.0, tr.AsNumber(n))

	z, ok := tr.GetKey(obj, "z")
	require.True(t, ok)
	assert.Equal(t, KindNull, tr.Kind(z))

	_, ok = tr.GetKey(obj, "missing")
	assert.False(t, ok)

	a, _ := tr.GetKey(obj, "a")
	assert.Equal(t, 2, tr.Len(a))
	first, ok := tr.GetIndex(a, 0)
	require.True(t, ok)
	assert.True(t, tr.AsBool(first))
	_, ok = tr.GetIndex(a, 2)
	assert.False(t, ok)
}

func TestTreeRejectsWrongKind(t *testing.T) {
	var tr Tree
	assert.Error(t, tr.SetKey(tr.NewArray(), "k", tr.Null()))
	assert.Error(t, tr.SetIndex(tr.NewObject(), 0, tr.Null()))
	assert.Error(t, tr.SetIndex(tr.NewArray(), 3, tr.Null()))
}

func TestTreeForeignHandle(t *testing.T) {
	var tr Tree
	assert.Equal(t, KindNull, tr.Kind("not a node"))
	assert.Equal(t, "", tr.AsString(42))
	assert.Equal(t, 0, tr.Len(nil))
}
