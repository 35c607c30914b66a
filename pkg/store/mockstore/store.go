// Package mockstore provides a func-field mock of the store interfaces,
// for exercising error paths in unit tests.
package mockstore

import (
	"github.com/contentdepot/depot/pkg/store"
)

// StoreMock mocks store.Store with overridable functions
type StoreMock struct {
	StringFunc     func() string
	InitializeFunc func() error
	CloseFunc      func() error
	SizeFunc       func() uint64
	ViewFunc       func(func(store.Txn) error) error
	UpdateFunc     func(func(store.Txn) error) error
}

func (m *StoreMock) String() string {
	if m.StringFunc != nil {
		return m.StringFunc()
	}
	return "mock"
}

func (m *StoreMock) Initialize() error {
	if m.InitializeFunc != nil {
		return m.InitializeFunc()
	}
	return nil
}

func (m *StoreMock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *StoreMock) Size() uint64 {
	if m.SizeFunc != nil {
		return m.SizeFunc()
	}
	return 0
}

func (m *StoreMock) View(fn func(store.Txn) error) error {
	if m.ViewFunc != nil {
		return m.ViewFunc(fn)
	}
	return store.ErrNotSupported
}

func (m *StoreMock) Update(fn func(store.Txn) error) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(fn)
	}
	return store.ErrNotSupported
}

// TxnMock mocks store.Txn with overridable functions
type TxnMock struct {
	GetFunc            func(string) ([]byte, error)
	SetFunc            func(string, []byte) error
	SetIfNotExistsFunc func(string, []byte) error
	DeleteFunc         func(string) error
	ScanFunc           func(string) store.Iterator
}

func (m *TxnMock) Get(key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(key)
	}
	return nil, store.ErrNotFound
}

func (m *TxnMock) Set(key string, value []byte) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *TxnMock) SetIfNotExists(key string, value []byte) error {
	if m.SetIfNotExistsFunc != nil {
		return m.SetIfNotExistsFunc(key, value)
	}
	return nil
}

func (m *TxnMock) Delete(key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(key)
	}
	return nil
}

func (m *TxnMock) Scan(prefix string) store.Iterator {
	if m.ScanFunc != nil {
		return m.ScanFunc(prefix)
	}
	return &emptyIterator{}
}

type emptyIterator struct{}

func (emptyIterator) Next() bool             { return false }
func (emptyIterator) Key() string            { return "" }
func (emptyIterator) Value() ([]byte, error) { return nil, store.ErrNotFound }
func (emptyIterator) Close()                 {}
