// Package localfs provides a file-backed metadata store, mostly useful
// for development and for exercising store-agnostic code in tests.
//
// Keys map to files under a base directory. Transactions are serialized
// with a store-wide lock; unlike the badger store, an Update interrupted
// mid-way is not rolled back, so this store is not meant for production
// metadata.
package localfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/contentdepot/depot/pkg/store"
)

// New creates a new local file system backed metadata store
func New(fs afero.Fs) store.Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".depot", "metadata"))
	}
	return &localFS{fs: fs}
}

type localFS struct {
	fs afero.Fs
	mu sync.RWMutex
}

func (l *localFS) String() string {
	return "localfs"
}

func (l *localFS) Initialize() error {
	return nil
}

func (l *localFS) Close() error {
	return nil
}

func (l *localFS) Size() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var size uint64
	_ = afero.Walk(l.fs, ".", func(_ string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		size += uint64(info.Size())
		return nil
	})
	return size
}

func (l *localFS) View(fn func(store.Txn) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return fn(&localTxn{fs: l.fs})
}

func (l *localFS) Update(fn func(store.Txn) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return fn(&localTxn{fs: l.fs})
}

type localTxn struct {
	fs afero.Fs
}

func (t *localTxn) Get(key string) ([]byte, error) {
	data, err := afero.ReadFile(t.fs, filepath.FromSlash(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (t *localTxn) Set(key string, value []byte) error {
	pth := filepath.FromSlash(key)
	if dir := filepath.Dir(pth); dir != "" {
		if err := t.fs.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return afero.WriteFile(t.fs, pth, value, 0600)
}

func (t *localTxn) SetIfNotExists(key string, value []byte) error {
	exists, err := afero.Exists(t.fs, filepath.FromSlash(key))
	if err != nil {
		return err
	}
	if exists {
		return store.ErrExists
	}
	return t.Set(key, value)
}

func (t *localTxn) Delete(key string) error {
	err := t.fs.Remove(filepath.FromSlash(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (t *localTxn) Scan(prefix string) store.Iterator {
	keys := make([]string, 0, 64)
	_ = afero.Walk(t.fs, ".", func(pth string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		key := filepath.ToSlash(pth)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	sort.Strings(keys)

	return &localIterator{txn: t, keys: keys, pos: -1}
}

type localIterator struct {
	txn  *localTxn
	keys []string
	pos  int
}

func (i *localIterator) Next() bool {
	i.pos++
	return i.pos < len(i.keys)
}

func (i *localIterator) Key() string {
	return i.keys[i.pos]
}

func (i *localIterator) Value() ([]byte, error) {
	return i.txn.Get(i.keys[i.pos])
}

func (i *localIterator) Close() {}
