package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/store"
	"github.com/contentdepot/depot/pkg/store/mockstore"
)

var errFaulty = errors.New("test: store failure")

func faultyStore() store.Store {
	return &mockstore.StoreMock{
		ViewFunc: func(fn func(store.Txn) error) error {
			return fn(&mockstore.TxnMock{
				GetFunc: func(string) ([]byte, error) { return nil, errFaulty },
			})
		},
		UpdateFunc: func(fn func(store.Txn) error) error {
			return fn(&mockstore.TxnMock{
				GetFunc: func(string) ([]byte, error) { return nil, errFaulty },
			})
		},
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	meta := faultyStore()

	_, err := GetRepo(testDomain, "repo-1", meta)
	require.ErrorIs(t, err, errFaulty)

	_, err = CreateVersion(testDomain, "repo-1", VersionParams{}, meta)
	require.ErrorIs(t, err, errFaulty)

	err = DeleteVersion(testDomain, "repo-1", 1, meta)
	require.ErrorIs(t, err, errFaulty)

	_, err = GetContent(testDomain, "some-id", meta)
	require.ErrorIs(t, err, errFaulty)
}

func TestConflictSurfacesAsConcurrentModification(t *testing.T) {
	meta := &mockstore.StoreMock{
		UpdateFunc: func(func(store.Txn) error) error {
			// a residual conflict after the store exhausted its retries
			return store.ErrConflict
		},
	}

	_, err := CreateVersion(testDomain, "repo-1", VersionParams{}, meta)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrConcurrentModification)
}
