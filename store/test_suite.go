package store

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Suite runs the same set of checks against any CacheableKVStore
// implementation. Every check starts from a fresh base store.
type Suite struct {
	makeBase BaseConstructor
}

// BaseConstructor returns an empty store and a function releasing it.
type BaseConstructor func() (base CacheableKVStore, cleanup func())

// NewSuite returns a suite testing stores created by the constructor.
func NewSuite(constructor BaseConstructor) *Suite {
	return &Suite{makeBase: constructor}
}

// Run executes all checks as subtests.
func (s *Suite) Run(t *testing.T) {
	t.Run("layering", s.Layering)
	t.Run("shadowing", s.Shadowing)
	t.Run("iteration", s.Iteration)
	t.Run("prefix scan", s.PrefixScan)
}

// Layering checks that a cache wrap sees the data of its parent, keeps its
// own writes private until Write and drops them on Discard. Savepoints
// nest caches, so two levels are used.
func (s *Suite) Layering(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k1, v1 := []byte("authority:registry"), []byte("signers")
	k2, v2 := []byte("events:0001"), []byte("proposal")
	k3, v3 := []byte("events:0002"), []byte("signature")

	s.AssertGetHas(t, base, k1, nil, false)
	require.NoError(t, base.Set(k1, v1))
	s.AssertGetHas(t, base, k1, v1, true)

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	s.AssertGetHas(t, inner, k1, v1, true)

	require.NoError(t, inner.Set(k2, v2))
	s.AssertGetHas(t, inner, k2, v2, true)
	s.AssertGetHas(t, outer, k2, nil, false)

	require.NoError(t, inner.Write())
	s.AssertGetHas(t, outer, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	dropped := outer.CacheWrap()
	require.NoError(t, dropped.Set(k3, v3))
	require.NoError(t, dropped.Delete(k1))
	dropped.Discard()
	s.AssertGetHas(t, outer, k1, v1, true)
	s.AssertGetHas(t, outer, k3, nil, false)

	require.NoError(t, outer.Write())
	s.AssertGetHas(t, base, k1, v1, true)
	s.AssertGetHas(t, base, k2, v2, true)
	s.AssertGetHas(t, base, k3, nil, false)
}

// Shadowing checks that writes and deletes in a child hide the values of
// the parent, and that writing the child applies them.
func (s *Suite) Shadowing(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 32)

	cases := map[string]struct {
		parent []Op
		child  []Op
		// want is what the child sees. Nil value means missing.
		want []Model
	}{
		"child overwrites parent value": {
			parent: []Op{SetOp(ks[0], vs[0])},
			child:  []Op{SetOp(ks[0], vs[1])},
			want:   []Model{Pair(ks[0], vs[1])},
		},
		"child deletes parent value": {
			parent: []Op{SetOp(ks[0], vs[0]), SetOp(ks[1], vs[1])},
			child:  []Op{DelOp(ks[1])},
			want:   []Model{Pair(ks[0], vs[0]), Pair(ks[1], nil)},
		},
		"delete then set again": {
			parent: []Op{SetOp(ks[2], vs[2])},
			child:  []Op{DelOp(ks[2]), SetOp(ks[2], vs[3]), SetOp(ks[3], vs[3])},
			want:   []Model{Pair(ks[2], vs[3]), Pair(ks[3], vs[3])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			applyOps(t, parent, tc.parent)
			before := snapshot(t, parent)

			child := parent.CacheWrap()
			applyOps(t, child, tc.child)
			for _, m := range tc.want {
				s.AssertGetHas(t, child, m.Key, m.Value, m.Value != nil)
			}
			require.Equal(t, before, snapshot(t, parent), "parent modified before write")

			require.NoError(t, child.Write())
			for _, m := range tc.want {
				s.AssertGetHas(t, parent, m.Key, m.Value, m.Value != nil)
			}
		})
	}
}

// Iteration checks that iterating a child merges its content with the
// parent in key order, in both directions and with any bounds.
func (s *Suite) Iteration(t *testing.T) {
	const size = 40

	parentSet := randModels(size, 8, 24)
	childSet := randModels(size, 8, 24)
	// child overwrites a few parent values and deletes a few others
	overwritten := Pair(parentSet[3].Key, []byte("overwritten"))
	deleted := parentSet[7]

	parent, cleanup := s.makeBase()
	defer cleanup()
	for _, m := range parentSet {
		require.NoError(t, parent.Set(m.Key, m.Value))
	}
	child := parent.CacheWrap()
	for _, m := range childSet {
		require.NoError(t, child.Set(m.Key, m.Value))
	}
	require.NoError(t, child.Set(overwritten.Key, overwritten.Value))
	require.NoError(t, child.Delete(deleted.Key))

	var merged []Model
	for i, m := range parentSet {
		switch i {
		case 3:
			merged = append(merged, overwritten)
		case 7:
		default:
			merged = append(merged, m)
		}
	}
	all := sortModels(append(merged, childSet...))
	n := len(all)

	queries := []rangeQuery{
		{nil, nil, false, all},
		{all[10].Key, nil, false, all[10:]},
		{nil, all[n-5].Key, false, all[:n-5]},
		{all[17].Key, all[52].Key, false, all[17:52]},
		{nil, nil, true, reverse(all)},
		{all[30].Key, nil, true, reverse(all[30:])},
		{nil, all[19].Key, true, reverse(all[:19])},
		{all[6].Key, all[26].Key, true, reverse(all[6:26])},
	}
	for i, q := range queries {
		t.Run(fmt.Sprintf("query %d", i), func(t *testing.T) {
			q.verify(t, child)
		})
	}
}

// PrefixScan checks that a range over a key prefix returns exactly the
// records stored under that prefix. Buckets and indexes rely on it.
func (s *Suite) PrefixScan(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	var events []Model
	for i := 0; i < 5; i++ {
		m := Pair([]byte(fmt.Sprintf("events:%04d", i)), []byte{byte(i)})
		events = append(events, m)
		require.NoError(t, base.Set(m.Key, m.Value))
	}
	require.NoError(t, base.Set([]byte("event:0000"), []byte("other")))
	require.NoError(t, base.Set([]byte("events;"), []byte("after")))
	require.NoError(t, base.Set([]byte("authority:registry"), []byte("before")))

	cache := base.CacheWrap()
	extra := Pair([]byte("events:0005"), []byte{5})
	require.NoError(t, cache.Set(extra.Key, extra.Value))
	require.NoError(t, cache.Delete(events[2].Key))

	want := []Model{events[0], events[1], events[3], events[4], extra}
	q := rangeQuery{start: []byte("events:"), end: []byte("events;"), expected: want}
	q.verify(t, cache)

	q = rangeQuery{start: []byte("events:"), end: []byte("events;"), reverse: true, expected: reverse(want)}
	q.verify(t, cache)
}

// AssertGetHas checks that both Get and Has report the expected state of
// a key.
func (s *Suite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	require.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	require.Equal(t, has, exists)
}

func applyOps(t testing.TB, kv SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		require.NoError(t, op.Apply(kv))
	}
}

// snapshot returns all content of the store in key order.
func snapshot(t testing.TB, kv ReadOnlyKVStore) []Model {
	t.Helper()
	iter, err := kv.Iterator(nil, nil)
	require.NoError(t, err)
	defer iter.Close()

	var res []Model
	for ; iter.Valid(); err = iter.Next() {
		require.NoError(t, err)
		res = append(res, Pair(iter.Key(), iter.Value()))
	}
	require.NoError(t, err)
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

// rangeQuery describes a single iteration and its expected result.
type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (q rangeQuery) verify(t testing.TB, kv ReadOnlyKVStore) {
	t.Helper()
	var (
		iter Iterator
		err  error
	)
	if q.reverse {
		iter, err = kv.ReverseIterator(q.start, q.end)
	} else {
		iter, err = kv.Iterator(q.start, q.end)
	}
	require.NoError(t, err)
	defer iter.Close()

	for i, want := range q.expected {
		require.True(t, iter.Valid(), "iterator exhausted after %d of %d", i, len(q.expected))
		require.Equal(t, want.Key, iter.Key(), "key %d", i)
		require.Equal(t, want.Value, iter.Value(), "value %d", i)
		require.NoError(t, iter.Next())
	}
	require.False(t, iter.Valid(), "iterator not exhausted")
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}
