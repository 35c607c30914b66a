package bdgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdepot/depot/pkg/store"
)

func testStore(t *testing.T) store.Store {
	s := New("", WithInMemory(true))
	require.NoError(t, s.Initialize())
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestStoreGetSet(t *testing.T) {
	s := testStore(t)

	err := s.Update(func(txn store.Txn) error {
		return txn.Set("repos/d/r", []byte("payload"))
	})
	require.NoError(t, err)

	err = s.View(func(txn store.Txn) error {
		data, e := txn.Get("repos/d/r")
		require.NoError(t, e)
		assert.Equal(t, []byte("payload"), data)

		_, e = txn.Get("repos/d/missing")
		assert.ErrorIs(t, e, store.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreSetIfNotExists(t *testing.T) {
	s := testStore(t)

	err := s.Update(func(txn store.Txn) error {
		require.NoError(t, txn.SetIfNotExists("k", []byte("first")))
		return nil
	})
	require.NoError(t, err)

	err = s.Update(func(txn store.Txn) error {
		e := txn.SetIfNotExists("k", []byte("second"))
		assert.ErrorIs(t, e, store.ErrExists)
		return nil
	})
	require.NoError(t, err)

	err = s.View(func(txn store.Txn) error {
		data, e := txn.Get("k")
		require.NoError(t, e)
		assert.Equal(t, []byte("first"), data)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreDelete(t *testing.T) {
	s := testStore(t)

	err := s.Update(func(txn store.Txn) error {
		require.NoError(t, txn.Set("k", []byte("v")))
		require.NoError(t, txn.Delete("k"))
		// deleting an absent key is not an error
		require.NoError(t, txn.Delete("k"))
		return nil
	})
	require.NoError(t, err)

	err = s.View(func(txn store.Txn) error {
		_, e := txn.Get("k")
		assert.ErrorIs(t, e, store.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreScan(t *testing.T) {
	s := testStore(t)

	keys := []string{
		"versions/d/r/00000000000000000001",
		"versions/d/r/00000000000000000002",
		"versions/d/r/00000000000000000010",
		"versions/d/other/00000000000000000001",
		"repos/d/r",
	}
	err := s.Update(func(txn store.Txn) error {
		for _, key := range keys {
			if e := txn.Set(key, []byte(key)); e != nil {
				return e
			}
		}
		return nil
	})
	require.NoError(t, err)

	var scanned []string
	err = s.View(func(txn store.Txn) error {
		it := txn.Scan("versions/d/r/")
		defer it.Close()

		for it.Next() {
			data, e := it.Value()
			require.NoError(t, e)
			assert.Equal(t, it.Key(), string(data))
			scanned = append(scanned, it.Key())
		}
		return nil
	})
	require.NoError(t, err)

	// prefix-filtered, in lexicographic (numeric) order
	assert.Equal(t, []string{
		"versions/d/r/00000000000000000001",
		"versions/d/r/00000000000000000002",
		"versions/d/r/00000000000000000010",
	}, scanned)
}

func TestStoreUpdateRollsBack(t *testing.T) {
	s := testStore(t)

	sentinel := store.ErrNotSupported
	err := s.Update(func(txn store.Txn) error {
		require.NoError(t, txn.Set("k", []byte("v")))
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	err = s.View(func(txn store.Txn) error {
		_, e := txn.Get("k")
		assert.ErrorIs(t, e, store.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreString(t *testing.T) {
	assert.Equal(t, "badger(in-memory)", New("", WithInMemory(true)).String())
	assert.Equal(t, "badger@/tmp/meta", New("/tmp/meta").String())
}
