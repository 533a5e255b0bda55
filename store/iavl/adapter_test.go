package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

// makeBase returns the base layer
//
// If you want to test a different kvstore implementation
// you can copy most of these tests and change makeBase.
// Once that passes, customize and extend as you wish
func makeBase() (store.CacheableKVStore, func()) {
	commit, close := makeCommitStore()
	return commit.Adapter(), close
}

func makeCommitStore() (*CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	close := func() { os.RemoveAll(tmpDir) }
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		close()
		panic(err)
	}
	return commit, close
}

var suite = store.NewSuite(makeBase)

func TestAdapterStore(t *testing.T) { suite.Run(t) }

// TestCommitOverwrite checks that we commit properly
// and can add/overwrite/query in the next adapter
func TestCommitOverwrite(t *testing.T) {
	k1, k2, k3 := []byte("alice"), []byte("bob"), []byte("carol")
	v1, v2, v3 := []byte("one"), []byte("two"), []byte("three")

	commit, close := makeCommitStore()
	defer close()
	// only one to trigger a cleanup
	commit.SetHistory(1)

	id := commit.LatestVersion()
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatal("hash is not empty")
	}

	parent := commit.CacheWrap()
	assert.Nil(t, parent.Set(k1, v1))
	assert.Nil(t, parent.Set(k2, v2))
	// write data to backing store
	assert.Nil(t, parent.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}

	// child also comes from commit
	child := commit.CacheWrap()
	assert.Nil(t, child.Set(k1, v3))
	assert.Nil(t, child.Set(k3, v3))
	assert.Nil(t, child.Delete(k2))

	// and a side-cache wrap to see they are in parallel
	side := commit.CacheWrap()
	suite.AssertGetHas(t, side, k1, v1, true)
	suite.AssertGetHas(t, side, k2, v2, true)
	suite.AssertGetHas(t, side, k3, nil, false)

	suite.AssertGetHas(t, child, k1, v3, true)
	suite.AssertGetHas(t, child, k2, nil, false)
	suite.AssertGetHas(t, child, k3, v3, true)

	// written but not committed data is not visible in committed state
	assert.Nil(t, child.Write())
	got, err := commit.Get(k3)
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)

	got, err = commit.Get(k3)
	assert.Nil(t, err)
	assert.Equal(t, v3, got)
}

// TestCommitReload ensures that committed data survives closing the store.
func TestCommitReload(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("key"), []byte("value")))
	assert.Nil(t, cache.Write())
	want, err := commit.Commit()
	assert.Nil(t, err)

	// The database handle must be released before the directory can be
	// opened again.
	commit.Close()

	reloaded, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	defer reloaded.Close()
	assert.Nil(t, reloaded.LoadLatestVersion())
	assert.Equal(t, want, reloaded.LatestVersion())

	got, err := reloaded.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMockCommitStore(t *testing.T) {
	commit := MockCommitStore()
	assert.Nil(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("b")))
	assert.Nil(t, cache.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
}

// TestLoadVersion checks that an older version can be loaded back.
func TestLoadVersion(t *testing.T) {
	commit, close := makeCommitStore()
	defer close()

	key := []byte("authority:registry")
	for _, val := range []string{"first", "second"} {
		cache := commit.CacheWrap()
		assert.Nil(t, cache.Set(key, []byte(val)))
		assert.Nil(t, cache.Write())
		_, err := commit.Commit()
		assert.Nil(t, err)
	}
	assert.Equal(t, int64(2), commit.LatestVersion().Version)

	assert.Nil(t, commit.LoadVersion(1))
	assert.Equal(t, int64(1), commit.LatestVersion().Version)
	got, err := commit.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, []byte("first"), got)
}
