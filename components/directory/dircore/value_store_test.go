package dircore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueStoreZeroValue(t *testing.T) {
	var store ValueStore

	require.Equal(t, 0, store.Len())
	require.Empty(t, store.Keys())
	require.Equal(t, "", store.Get("foo"))
	require.False(t, store.Contains("foo"))
	require.NotNil(t, store.Map())
}

func TestValueStoreSetOverwrites(t *testing.T) {
	var store ValueStore

	store.Set("foo", "bar")
	store.Set("foo", "baz")
	store.Set("abc", "42")

	require.Equal(t, "baz", store.Get("foo"))
	require.Equal(t, []string{"abc", "foo"}, store.Keys())
	require.Equal(t, 2, store.Len())

	value, ok := store.Lookup("abc")
	require.True(t, ok)
	require.Equal(t, "42", value)

	store.Remove("abc")
	require.False(t, store.Contains("abc"))
}

func TestValueStoreCloneIsIndependent(t *testing.T) {
	store := NewValueStore(map[string]string{"foo": "bar"})

	clone := store.Clone()
	require.True(t, store.Equal(clone))

	clone.Set("foo", "baz")
	require.Equal(t, "bar", store.Get("foo"))
	require.False(t, store.Equal(clone))

	m := store.Map()
	m["foo"] = "changed"
	require.Equal(t, "bar", store.Get("foo"))
}

func TestValueStoreReservedKeys(t *testing.T) {
	require.True(t, IsReservedKey(KeyHost))
	require.True(t, IsReservedKey(KeyPort))
	require.False(t, IsReservedKey("foo"))
}
