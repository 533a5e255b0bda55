/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index,
and may possess secondary indexes (1:1 or 1:N).
* Easy queries for one and iteration.

For inspiration, look at [storm](https://github.com/asdine/storm) built on top of [bolt kvstore](https://github.com/boltdb/bolt#using-buckets).
* Do not use so much reflection magic. Better do stuff compile-time static, even if it is a bit of boilerplate.
* Consider general usability flow from that project
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a generic holder that stores data as well
// as references to secondary indexes and sequences.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
// Bucket is a prefixed subspace of the DB
// proto defines the default Model, all elements of this type
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

// NewBucket creates a bucket to store data
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element. Nil is returned if the element does not exist.
func (b Bucket) Get(db vault.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrapf(err, "%s get", b.name)
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if an element is stored under given key.
func (b Bucket) Has(db vault.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrapf(err, "%s has", b.name)
	}
	return ok, nil
}

// Parse takes a key and value data and
// reconstructs the data this Bucket would return.
//
// Used internally as part of Get.
// It is exposed mainly as a test helper, but can work for
// any code that wants to parse
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := proto.Unmarshal(value, obj.Value()); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "%s unmarshal: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto
func (b Bucket) Save(db vault.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}

	bz, err := proto.Marshal(model.Value())
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "%s marshal: %s", b.name, err)
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}

	// now save this one
	if err := db.Set(b.DBKey(model.Key()), bz); err != nil {
		return errors.Wrapf(err, "%s save", b.name)
	}
	return nil
}

// Delete will remove the value at a key
func (b Bucket) Delete(db vault.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}

	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrapf(err, "%s delete", b.name)
	}
	return nil
}

func (b Bucket) updateIndexes(db vault.KVStore, key []byte, model Object) error {
	// update all indexes
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && model == nil {
		// deleting something that does not exist
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, model); err != nil {
			return err
		}
	}
	return nil
}

// Sequence returns a Sequence by name
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of this bucket with given index,
// panics if it an index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	// no duplicate indexes! (panic on init)
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}

	add := NewIndex(b.name+"_"+name, indexer, unique)
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = add
	b.indexes = indexes
	return b
}

// GetIndexed queries the named index for the given key. Objects are
// returned in the order of their primary keys.
func (b Bucket) GetIndexed(db vault.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	refs, err := idx.Keys(db, key)
	if err != nil {
		return nil, err
	}
	return b.readRefs(db, refs)
}

func (b Bucket) readRefs(db vault.ReadOnlyKVStore, refs [][]byte) ([]Object, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	objs := make([]Object, len(refs))
	for i, key := range refs {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			return nil, errors.Wrapf(errors.ErrHuman, "%s: dangling index reference %X", b.name, key)
		}
		objs[i] = obj
	}
	return objs, nil
}

// Range returns up to limit objects whose keys are within the [start, end)
// range, in ascending key order. A nil start or end leaves the range open
// on that side. A limit of zero or less means no limit.
func (b Bucket) Range(db vault.ReadOnlyKVStore, start, end []byte, limit int) ([]Object, error) {
	from := b.DBKey(start)
	var to []byte
	if end != nil {
		to = b.DBKey(end)
	} else {
		to = PrefixEnd(b.prefix)
	}

	iter, err := db.Iterator(from, to)
	if err != nil {
		return nil, errors.Wrapf(err, "%s range", b.name)
	}
	defer iter.Close()

	var res []Object
	for ; iter.Valid() && (limit <= 0 || len(res) < limit); err = iter.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "%s range", b.name)
		}
		key := iter.Key()[len(b.prefix):]
		obj, err := b.Parse(append([]byte(nil), key...), iter.Value())
		if err != nil {
			return nil, err
		}
		res = append(res, obj)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s range", b.name)
	}
	return res, nil
}
