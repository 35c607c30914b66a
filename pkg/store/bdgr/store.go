// Package bdgr provides a badger-backed metadata store.
//
// Badger transactions run under SSI: conflicting updates are retried with
// an exponential backoff before the conflict is surfaced to the caller.
package bdgr

import (
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v3"

	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/store"
)

const defaultMaxRetries = 5

// Option customizes the badger store
type Option func(*bdgrStore)

// WithInMemory keeps the whole store in memory (used by tests)
func WithInMemory(inMemory bool) Option {
	return func(s *bdgrStore) {
		s.inMemory = inMemory
	}
}

// WithMaxRetries sets how many times a conflicting transaction is retried
func WithMaxRetries(maxRetries uint64) Option {
	return func(s *bdgrStore) {
		s.maxRetries = maxRetries
	}
}

// New creates a badger-backed metadata store rooted at dir
func New(dir string, opts ...Option) store.Store {
	s := &bdgrStore{
		dir:        dir,
		maxRetries: defaultMaxRetries,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

type bdgrStore struct {
	dir        string
	inMemory   bool
	maxRetries uint64
	db         *badger.DB
	init       sync.Once
	close      sync.Once
}

func (s *bdgrStore) String() string {
	if s.inMemory {
		return "badger(in-memory)"
	}
	return fmt.Sprint("badger@", s.dir)
}

func (s *bdgrStore) Initialize() error {
	var err error

	s.init.Do(func() {
		options := badger.DefaultOptions(s.dir).
			WithInMemory(s.inMemory).
			WithLogger(nil)
		if s.inMemory {
			options = options.WithDir("").WithValueDir("")
		}

		var db *badger.DB
		db, err = badger.Open(options)
		if err != nil {
			return
		}
		s.db = db
	})

	return err
}

func (s *bdgrStore) Close() error {
	var err error

	s.close.Do(func() {
		if s.db != nil {
			err = s.db.Close()
			if err == nil {
				s.db = nil
			}
		}
	})

	return err
}

func (s *bdgrStore) Size() uint64 {
	lsmSize, logSize := s.db.Size()

	return uint64(lsmSize + logSize)
}

func (s *bdgrStore) View(fn func(store.Txn) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&bdgrTxn{txn: txn})
	})
}

func (s *bdgrStore) Update(fn func(store.Txn) error) error {
	err := backoff.Retry(func() error {
		e := s.db.Update(func(txn *badger.Txn) error {
			return fn(&bdgrTxn{txn: txn})
		})
		if e != nil {
			if errors.Is(e, badger.ErrConflict) {
				return e // retry
			}
			return backoff.Permanent(e)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxRetries))

	if errors.Is(err, badger.ErrConflict) {
		return store.ErrConflict
	}
	return err
}
