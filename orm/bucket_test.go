package orm

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &Counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketNameCollision(t *testing.T) {
	const bucketName = "mybucket"
	var objkey = []byte("collision-key")

	b1 := NewBucket(bucketName, NewSimpleObj(nil, &Counter{}))
	b2 := NewBucket(bucketName, NewSimpleObj(nil, &Label{}))

	db := store.MemStore()
	assert.Nil(t, b1.Save(db, counterObj(string(objkey), 7, "")))

	// Buckets do not know about each other. Saving an object under the
	// same key overwrites and because there is no check of stored data,
	// this operation does not fail.
	label := NewSimpleObj(objkey, &Label{Names: []string{"foobar"}})
	if err := b2.Save(db, label); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	obj, err := b2.Get(db, objkey)
	assert.Nil(t, err)
	assert.Equal(t, &Label{Names: []string{"foobar"}}, obj.Value())

	// Loading data that is not a protobuf message must fail.
	assert.Nil(t, db.Set(b1.DBKey(objkey), []byte{0xFF, 0xFF, 0xFF}))
	if _, err := b1.Get(db, objkey); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	b := NewBucket("bucket", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	err := b.Save(db, counterObj("key", -1, ""))
	assert.FieldError(t, err, "Value", errors.ErrModel)

	err = b.Save(db, counterObj("", 1, ""))
	assert.FieldError(t, err, "Key", errors.ErrEmpty)
}

func TestBucketGetSaveDelete(t *testing.T) {
	b := NewBucket("bucket", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	obj, err := b.Get(db, []byte("missing"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, counterObj("alice", 5, "a")))
	ok, err := b.Has(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	obj, err = b.Get(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("alice"), obj.Key())
	assert.Equal(t, &Counter{Count: 5, Owner: "a"}, obj.Value())

	assert.Nil(t, b.Delete(db, []byte("alice")))
	obj, err = b.Get(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketRange(t *testing.T) {
	b := NewBucket("bucket", NewSimpleObj(nil, &Counter{}))
	other := NewBucket("buckets", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	for i, k := range []string{"d", "a", "c", "b"} {
		assert.Nil(t, b.Save(db, counterObj(k, int64(i), "")))
	}
	// data of another bucket must never leak into the range
	assert.Nil(t, other.Save(db, counterObj("a", 99, "")))

	keys := func(objs []Object) []string {
		var res []string
		for _, o := range objs {
			res = append(res, string(o.Key()))
		}
		return res
	}

	cases := map[string]struct {
		start, end []byte
		limit      int
		want       []string
	}{
		"everything":   {want: []string{"a", "b", "c", "d"}},
		"from a key":   {start: []byte("b"), want: []string{"b", "c", "d"}},
		"up to a key":  {end: []byte("c"), want: []string{"a", "b"}},
		"with a limit": {start: []byte("b"), limit: 2, want: []string{"b", "c"}},
		"empty range":  {start: []byte("x"), want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			objs, err := b.Range(db, tc.start, tc.end, tc.limit)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, keys(objs))
		})
	}
}
