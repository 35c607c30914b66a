package core

import (
	"time"

	"go.uber.org/zap"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// CreateRepo creates a repository together with its empty initial version 0.
func CreateRepo(repo model.RepoDescriptor, meta store.Store, opts ...Option) error {
	settings := defaultSettings(opts)

	if err := model.ValidateRepo(repo); err != nil {
		return err
	}
	if repo.Timestamp.IsZero() {
		repo.Timestamp = time.Now().UTC()
	}
	repo.NextVersion = 1

	err := meta.Update(func(txn store.Txn) error {
		data, e := marshal(repo)
		if e != nil {
			return e
		}
		if e = txn.SetIfNotExists(model.RepoKey(repo.Domain, repo.Name), data); e != nil {
			if errors.Is(e, store.ErrExists) {
				return status.ErrRepoExists.WrapMessage("repo %s/%s", repo.Domain, repo.Name)
			}
			return e
		}

		return putVersion(txn, model.VersionDescriptor{
			Domain:    repo.Domain,
			Repo:      repo.Name,
			Number:    0,
			Complete:  true,
			Timestamp: repo.Timestamp,
		})
	})
	if err != nil {
		return err
	}

	settings.l.Info("created repo",
		zap.String("domain", repo.Domain),
		zap.String("repo", repo.Name),
	)
	return nil
}

// GetRepo retrieves a repo descriptor by name
func GetRepo(domain, repo string, meta store.Store, opts ...Option) (model.RepoDescriptor, error) {
	_ = defaultSettings(opts)

	var descriptor model.RepoDescriptor
	err := meta.View(func(txn store.Txn) error {
		var e error
		descriptor, e = getRepo(txn, domain, repo)
		return e
	})
	return descriptor, err
}

// UpdateRepo updates the mutable fields of a repo descriptor: description,
// contributor and version retention. When the retention count is lowered,
// surplus versions are squashed away immediately.
func UpdateRepo(repo model.RepoDescriptor, meta store.Store, opts ...Option) error {
	settings := defaultSettings(opts)

	if err := model.ValidateRepo(repo); err != nil {
		return err
	}

	release, err := versionLocks.acquire(repo.Domain, repo.Name, settings.lockTimeout)
	if err != nil {
		return err
	}
	defer release()

	var retentionLowered bool
	err = meta.Update(func(txn store.Txn) error {
		current, e := getRepo(txn, repo.Domain, repo.Name)
		if e != nil {
			return e
		}

		retentionLowered = repo.RetainVersions > 0 &&
			(current.RetainVersions == 0 || repo.RetainVersions < current.RetainVersions)

		current.Description = repo.Description
		current.Contributor = repo.Contributor
		current.RetainVersions = repo.RetainVersions
		return putRepo(txn, current)
	})
	if err != nil {
		return err
	}

	if retentionLowered {
		squashed, e := enforceRetentionLocked(repo.Domain, repo.Name, meta, settings)
		if e != nil {
			return e
		}
		settings.l.Info("retention lowered on repo update",
			zap.String("domain", repo.Domain),
			zap.String("repo", repo.Name),
			zap.Int("retain", repo.RetainVersions),
			zap.Int("squashed", squashed),
		)
	}
	return nil
}
