package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Index maintains a secondary index of a bucket.
type Index interface {
	// Name returns the name of this index.
	Name() string

	// Update updates the index. It should be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db vault.KVStore, prev Object, save Object) error

	// Keys returns all primary keys that were indexed under given value,
	// in ascending order.
	Keys(db vault.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

const idxPrefix = "_i."

// Indexer calculates the secondary index key for a given object. Returning
// a nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// nativeIndex stores every reference under its own database key:
//
//   _i.<name>:<uvarint len(value)><value><primary key>
//
// Storing the length of the indexed value keeps values that are prefixes
// of each other apart, so that a prefix scan returns only exact matches,
// sorted by the primary key.
type nativeIndex struct {
	name    string
	id      []byte
	unique  bool
	indexer Indexer
}

var _ Index = nativeIndex{}

// NewIndex constructs an index.
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
func NewIndex(name string, indexer Indexer, unique bool) Index {
	return nativeIndex{
		name:    name,
		id:      []byte(idxPrefix + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i nativeIndex) Name() string {
	return i.name
}

// valuePrefix returns the common prefix of all references indexed under
// given value.
func (i nativeIndex) valuePrefix(value []byte) []byte {
	var size [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(size[:], uint64(len(value)))

	out := make([]byte, 0, len(i.id)+n+len(value))
	out = append(out, i.id...)
	out = append(out, size[:n]...)
	return append(out, value...)
}

func (i nativeIndex) refKey(value, pk []byte) []byte {
	prefix := i.valuePrefix(value)
	out := make([]byte, len(prefix)+len(pk))
	copy(out, prefix)
	copy(out[len(prefix):], pk)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
func (i nativeIndex) Update(db vault.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()):
		return errors.Wrap(errors.ErrImmutable, "cannot change primary key")
	}

	if prev != nil {
		value, err := i.indexer(prev)
		if err != nil {
			return err
		}
		if value != nil {
			if err := db.Delete(i.refKey(value, prev.Key())); err != nil {
				return errors.Wrapf(err, "%s index remove", i.name)
			}
		}
	}

	if save == nil {
		return nil
	}
	value, err := i.indexer(save)
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	if i.unique {
		refs, err := i.Keys(db, value)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return errors.Wrapf(errors.ErrDuplicate, "%s index %X", i.name, value)
		}
	}
	if err := db.Set(i.refKey(value, save.Key()), save.Key()); err != nil {
		return errors.Wrapf(err, "%s index insert", i.name)
	}
	return nil
}

// Keys returns a list of all entity keys that were indexed under given value.
func (i nativeIndex) Keys(db vault.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix := i.valuePrefix(value)
	iter, err := db.Iterator(prefix, PrefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrapf(err, "%s index scan", i.name)
	}
	defer iter.Close()

	var refs [][]byte
	for ; iter.Valid(); err = iter.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "%s index scan", i.name)
		}
		refs = append(refs, append([]byte(nil), iter.Value()...))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s index scan", i.name)
	}
	return refs, nil
}

// PrefixEnd returns the smallest key that is greater than all keys starting
// with given prefix. Nil is returned if there is no such key, which means
// iteration is unbounded.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
