package htable_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vesper-lang/vesper/lang/htable"
)

func key(s string) *htable.Key {
	return &htable.Key{Chars: s, Hash: hashString(s)}
}

// hashString is a small FNV-1a stand-in good enough to exercise probing and
// collisions in tests without importing the value package's hasher.
func hashString(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func TestSetGetDelete(t *testing.T) {
	var tab htable.Table

	kx := key("x")
	isNew := tab.Set(kx, 1)
	require.True(t, isNew)

	v, ok := tab.Get(kx)
	require.True(t, ok)
	require.Equal(t, 1, v)

	isNew = tab.Set(kx, 2)
	require.False(t, isNew, "setting an existing key is not a new insertion")
	v, _ = tab.Get(kx)
	require.Equal(t, 2, v)

	require.True(t, tab.Delete(kx))
	_, ok = tab.Get(kx)
	require.False(t, ok)

	require.False(t, tab.Delete(kx), "deleting twice reports absent the second time")
}

func TestFindStringAfterTombstone(t *testing.T) {
	var tab htable.Table

	a, b := key("a"), key("b")
	tab.Set(a, "A")
	tab.Set(b, "B")
	tab.Delete(a)

	// b must still be reachable: its probe chain may run through a's
	// now-tombstoned slot.
	v, ok := tab.FindString("b", b.Hash)
	require.True(t, ok)
	require.Equal(t, "B", v)

	_, ok = tab.FindString("a", a.Hash)
	require.False(t, ok)
}

func TestGrowthPreservesEntries(t *testing.T) {
	var tab htable.Table

	keys := make([]*htable.Key, 0, 200)
	for i := 0; i < 200; i++ {
		k := key(fmt.Sprintf("key-%d", i))
		keys = append(keys, k)
		tab.Set(k, i)
	}

	require.Equal(t, 200, tab.Len())
	for i, k := range keys {
		v, ok := tab.Get(k)
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestTombstonesDoNotCountTowardLen(t *testing.T) {
	var tab htable.Table
	k := key("gone")
	tab.Set(k, true)
	tab.Delete(k)
	require.Equal(t, 0, tab.Len())
}
