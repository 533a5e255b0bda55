package store

import "github.com/iov-one/vault"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = vault.ReadOnlyKVStore
type SetDeleter = vault.SetDeleter
type KVStore = vault.KVStore
type Batch = vault.Batch
type Iterator = vault.Iterator
type Model = vault.Model
type CacheableKVStore = vault.CacheableKVStore
type KVCacheWrap = vault.KVCacheWrap
type CommitKVStore = vault.CommitKVStore
type CommitID = vault.CommitID

// Pair constructs a model from a key value pair.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
