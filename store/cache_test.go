package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCacheBase() (CacheableKVStore, func()) {
	return WithCache{EmptyKVStore{}}.CacheWrap(), func() {}
}

func TestCacheStore(t *testing.T) {
	NewSuite(makeCacheBase).Run(t)
}

// Writing to the empty base layer is a black hole.
func TestCacheDevNull(t *testing.T) {
	devnull := WithCache{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	require.NoError(t, base.Set(k, v))
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	require.NoError(t, base.Write())
	got, err = devnull.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheWritesThroughBatch(t *testing.T) {
	e := EmptyKVStore{}
	batch := NewNonAtomicBatch(e)
	c := NewCache(e, batch)
	require.NoError(t, c.Set([]byte("a"), []byte("1")))
	require.NoError(t, c.Delete([]byte("b")))

	assert.Equal(t, []Op{SetOp([]byte("a"), []byte("1")), DelOp([]byte("b"))}, batch.ShowOps())

	// A discarded cache forgets its entries.
	c.Discard()
	got, err := c.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSliceIterator(t *testing.T) {
	iter := NewSliceIterator([]Model{Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2"))})
	var keys []string
	for ; iter.Valid(); require.NoError(t, iter.Next()) {
		keys = append(keys, string(iter.Key()))
	}
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Panics(t, func() { iter.Key() })
	iter.Close()
}
