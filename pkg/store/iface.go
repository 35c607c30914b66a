// Package store abstracts the transactional KV store holding depot metadata.
//
// Implementations are expected to provide serializable transactions: a
// conflicting concurrent commit surfaces as ErrConflict and the caller
// retries the whole transaction.
package store

type errString string

func (e errString) Error() string {
	return string(e)
}

const (
	// ErrNotFound when a key does not exist
	ErrNotFound errString = "not found"

	// ErrExists when a key unexpectedly exists already
	ErrExists errString = "exists already"

	// ErrConflict when a transaction lost against a concurrent commit
	ErrConflict errString = "transaction conflict"

	// ErrNotSupported when an implementation does not support an operation
	ErrNotSupported errString = "not supported"
)

// A Store holds depot metadata in a flat, ordered key space.
type Store interface {
	String() string

	Initialize() error
	Close() error

	// Size reports the on-disk footprint in bytes, when known
	Size() uint64

	// View runs a read-only transaction
	View(func(Txn) error) error

	// Update runs a read-write transaction. The whole function either
	// commits atomically or leaves the store untouched.
	Update(func(Txn) error) error
}

// A Txn is a single store transaction
type Txn interface {
	// Get returns the value at key, or ErrNotFound
	Get(key string) ([]byte, error)

	// Set writes a value at key
	Set(key string, value []byte) error

	// SetIfNotExists writes a value at key, or returns ErrExists
	SetIfNotExists(key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error

	// Scan iterates keys sharing a prefix, in lexicographic order
	Scan(prefix string) Iterator
}

// An Iterator walks a key range. Usage:
//
//	it := txn.Scan(prefix)
//	defer it.Close()
//	for it.Next() {
//		... it.Key(), it.Value() ...
//	}
type Iterator interface {
	Next() bool
	Key() string
	Value() ([]byte, error)
	Close()
}
