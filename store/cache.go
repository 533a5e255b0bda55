package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

// freeListSize is the number of btree nodes kept for reuse by a cache and
// all of the caches layered on top of it.
const freeListSize = btree.DefaultFreeListSize

// WithCache gives any KVStore an in-memory cache wrap.
type WithCache struct {
	KVStore
}

var _ CacheableKVStore = WithCache{}

// CacheWrap returns a cache whose Write applies all changes to the wrapped
// store as a single batch.
func (w WithCache) CacheWrap() KVCacheWrap {
	return NewCache(w.KVStore, w.NewBatch())
}

// MemStore returns a store that keeps everything in memory. Writes of its
// cache wraps end up in the store, but the store itself persists nothing.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewCache(e, e.NewBatch())
}

// Cache collects writes in a btree on top of a read only parent. The parent
// is changed only through the batch, when the cache is written.
//
// A vault call runs on a Cache so that it either commits all of its changes
// or none of them.
type Cache struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = Cache{}

// NewCache returns an empty cache over parent. Write flushes batch, which
// must write to parent.
func NewCache(parent ReadOnlyKVStore, batch Batch) Cache {
	return newCache(parent, batch, btree.NewFreeList(freeListSize))
}

func newCache(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) Cache {
	return Cache{
		tree:   btree.NewWithFreeList(2, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap layers another cache on top of this one. Both share the free
// list.
func (c Cache) CacheWrap() KVCacheWrap {
	return newCache(c, c.NewBatch(), c.free)
}

// NewBatch returns a batch writing to this cache.
func (c Cache) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes all changes to the parent and empties the cache.
func (c Cache) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all changes. Released nodes go back to the free list.
func (c Cache) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c Cache) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(setEntry{cacheKey{key}, value})
	return c.batch.Set(key, value)
}

// Delete records a tombstone that hides the parent value of key.
func (c Cache) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(tombstone{cacheKey{key}})
	return c.batch.Delete(key)
}

func (c Cache) Get(key []byte) ([]byte, error) {
	switch e := c.tree.Get(cacheKey{key}).(type) {
	case nil:
		return c.parent.Get(key)
	case setEntry:
		return e.value, nil
	case tombstone:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown cache entry %T", e)
	}
}

func (c Cache) Has(key []byte) (bool, error) {
	switch e := c.tree.Get(cacheKey{key}).(type) {
	case nil:
		return c.parent.Has(key)
	case setEntry:
		return true, nil
	case tombstone:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown cache entry %T", e)
	}
}

// Iterator merges cached entries with the parent content, in ascending key
// order.
func (c Cache) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIter(ascendCache(c.tree, start, end), parent, false)
}

// ReverseIterator is Iterator in descending key order.
func (c Cache) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIter(descendCache(c.tree, start, end), parent, true)
}

// entry is implemented by everything stored in the cache tree.
type entry interface {
	btree.Item
	Key() []byte
}

// cacheKey orders entries by key. Alone it is used to look up the tree.
type cacheKey struct {
	key []byte
}

func (k cacheKey) Key() []byte { return k.key }

func (k cacheKey) Less(than btree.Item) bool {
	return bytes.Compare(k.key, than.(entry).Key()) < 0
}

// setEntry is a value written through the cache.
type setEntry struct {
	cacheKey
	value []byte
}

// tombstone is a key deleted through the cache.
type tombstone struct {
	cacheKey
}
