package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed vault.CommitKVStore
	deliver   vault.KVCacheWrap
	check     vault.KVCacheWrap
}

// NewCommitStore loads the latest version of the CommitKVStore and sets up
// the deliver and check caches.
func NewCommitStore(store vault.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current version and hash
func (cs *CommitStore) CommitInfo() vault.CommitID {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver/check caches
func (cs *CommitStore) Commit() (vault.CommitID, error) {
	// flush deliver to store and discard check
	if err := cs.deliver.Write(); err != nil {
		return vault.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	// write the store to disk
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	// set up new caches
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() vault.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() vault.CacheableKVStore {
	return cs.deliver
}

// CommittedStore returns a read only view of the last committed version.
func (cs *CommitStore) CommittedStore() vault.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

//------- genesis marker ---------

// _vt: is a prefix for vault internal data
const genesisKey = "_vt:genesis"

// genesisLoaded returns true if a genesis was already applied to the store.
func genesisLoaded(kv vault.ReadOnlyKVStore) (bool, error) {
	ok, err := kv.Has([]byte(genesisKey))
	if err != nil {
		return false, errors.Wrap(err, "load genesis marker")
	}
	return ok, nil
}

// markGenesis records that a genesis was applied. It fails if the marker
// is already set.
func markGenesis(kv vault.KVStore) error {
	loaded, err := genesisLoaded(kv)
	if err != nil {
		return err
	}
	if loaded {
		return errors.Wrap(errors.ErrUnauthorized, "genesis already loaded")
	}
	if err := kv.Set([]byte(genesisKey), []byte{1}); err != nil {
		return errors.Wrap(err, "save genesis marker")
	}
	return nil
}
