package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendCache returns all entries of the tree within the [start, end)
// range, in ascending key order. Tombstones are included so that they can
// mask the parent.
func ascendCache(bt *btree.BTree, start, end []byte) []entry {
	var items []entry
	collect := func(item btree.Item) bool {
		items = append(items, item.(entry))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(cacheKey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(cacheKey{start}, collect)
	default:
		bt.AscendRange(cacheKey{start}, cacheKey{end}, collect)
	}
	return items
}

// descendCache returns the same entries as ascendCache, in descending key
// order.
func descendCache(bt *btree.BTree, start, end []byte) []entry {
	items := ascendCache(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIter combines the cached entries with the iterator of the parent
// store. A cached entry shadows a parent value of the same key.
type mergeIter struct {
	items []entry
	idx   int
	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIter)(nil)

func newMergeIter(items []entry, parent Iterator, reverse bool) (*mergeIter, error) {
	iter := &mergeIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIter) Valid() bool {
	return i.ourValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIter) Next() error {
	// advance either us, parent, or both
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		fallthrough
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}

	// keep advancing over all deleted entries
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIter) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *mergeIter) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].(setEntry).value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *mergeIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipAllDeleted jumps over all tombstones that are pointed at. If the
// parent holds the same key, it is skipped as well.
func (i *mergeIter) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.items[i.idx].(tombstone); !ok {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator that should be read first, if any.
func (i *mergeIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parentValid() {
		if !i.ourValid() {
			return none
		}
		return us
	} else if !i.ourValid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *mergeIter) ourValid() bool {
	return i.idx < len(i.items)
}

// makes sure the parent is non-nil before checking if it is valid
func (i *mergeIter) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
