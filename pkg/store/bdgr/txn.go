package bdgr

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/store"
)

func badgerRewriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return store.ErrNotFound
	case errors.Is(err, badger.ErrConflict):
		return store.ErrConflict
	default:
		return err
	}
}

type bdgrTxn struct {
	txn *badger.Txn
}

func (t *bdgrTxn) Get(key string) ([]byte, error) {
	item, err := t.txn.Get([]byte(key))
	if err != nil {
		return nil, badgerRewriteError(err)
	}
	return item.ValueCopy(nil)
}

func (t *bdgrTxn) Set(key string, value []byte) error {
	return badgerRewriteError(t.txn.Set([]byte(key), value))
}

func (t *bdgrTxn) SetIfNotExists(key string, value []byte) error {
	_, err := t.txn.Get([]byte(key))
	switch {
	case err == nil:
		return store.ErrExists
	case errors.Is(err, badger.ErrKeyNotFound):
		return badgerRewriteError(t.txn.Set([]byte(key), value))
	default:
		return badgerRewriteError(err)
	}
}

func (t *bdgrTxn) Delete(key string) error {
	err := t.txn.Delete([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return badgerRewriteError(err)
}

func (t *bdgrTxn) Scan(prefix string) store.Iterator {
	iterator := t.txn.NewIterator(badger.IteratorOptions{
		Prefix:         []byte(prefix),
		PrefetchValues: true,
		PrefetchSize:   64,
	})

	return &bdgrIterator{
		isFirst:  true,
		iterator: iterator,
	}
}

type bdgrIterator struct {
	isFirst  bool
	iterator *badger.Iterator
}

func (i *bdgrIterator) Next() bool {
	if i.isFirst {
		i.isFirst = false
		i.iterator.Rewind()
	} else {
		i.iterator.Next()
	}
	return i.iterator.Valid()
}

func (i *bdgrIterator) Key() string {
	return string(i.iterator.Item().KeyCopy(nil))
}

func (i *bdgrIterator) Value() ([]byte, error) {
	return i.iterator.Item().ValueCopy(nil)
}

func (i *bdgrIterator) Close() {
	i.iterator.Close()
}
