// Package status exports errors produced by the core package.
package status

import (
	"github.com/contentdepot/depot/pkg/errors"
)

var (
	// ErrRepoExists indicates a repo creation hit an already existing repo
	ErrRepoExists = errors.New("repo already exists")

	// ErrRepoNotFound indicates the repository does not exist in this domain
	ErrRepoNotFound = errors.New("repo not found")

	// ErrVersionNotFound indicates the repository version does not exist
	ErrVersionNotFound = errors.New("repository version not found")

	// ErrContentNotFound indicates the content unit does not exist in this domain
	ErrContentNotFound = errors.New("content unit not found")

	// ErrDuplicateKey indicates two content units competing on the same
	// uniqueness key would be simultaneously present in one version
	ErrDuplicateKey = errors.New("duplicate uniqueness key in repository version")

	// ErrInvalidBaseVersion indicates the requested base version does not
	// exist in the repository being modified
	ErrInvalidBaseVersion = errors.New("invalid base version")

	// ErrLastVersion indicates an attempt to delete the sole remaining
	// version of a repository
	ErrLastVersion = errors.New("cannot delete repository version: it is the last one")

	// ErrConcurrentModification indicates a lock timeout or a transaction
	// conflict: the caller may retry the whole operation
	ErrConcurrentModification = errors.New("concurrent repository modification")

	// ErrContentReferenced indicates an attempt to delete a content unit
	// still referenced by some ledger row, possibly a historical one
	ErrContentReferenced = errors.New("content unit still referenced by a repository")
)
