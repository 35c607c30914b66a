package core

import (
	"go.uber.org/zap"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/store"
)

// EnforceRetention squashes away the oldest versions of a repository until
// at most the configured number of versions remain. The latest version is
// never deleted: a retention count below 1 is raised to 1.
//
// The retention count comes from the repo descriptor, or from the
// WithRetainLatest option when set. It returns the number of versions
// squashed.
func EnforceRetention(domain, repo string, meta store.Store, opts ...Option) (int, error) {
	settings := defaultSettings(opts)

	release, err := versionLocks.acquire(domain, repo, settings.lockTimeout)
	if err != nil {
		return 0, err
	}
	defer release()

	return enforceRetentionLocked(domain, repo, meta, settings)
}

// enforceRetentionFromRepo applies retention after a version mutation when
// the repo has a retention policy configured. The caller holds the lock.
func enforceRetentionFromRepo(domain, repo string, meta store.Store, settings Settings) (int, error) {
	if settings.retainOverride == 0 {
		repoDescriptor, err := GetRepo(domain, repo, meta)
		if err != nil {
			return 0, err
		}
		if repoDescriptor.RetainVersions == 0 {
			return 0, nil
		}
	}
	return enforceRetentionLocked(domain, repo, meta, settings)
}

func enforceRetentionLocked(domain, repo string, meta store.Store, settings Settings) (int, error) {
	retain := settings.retainOverride
	if retain == 0 {
		repoDescriptor, err := GetRepo(domain, repo, meta)
		if err != nil {
			return 0, err
		}
		retain = repoDescriptor.RetainVersions
	}
	if retain == 0 {
		// unlimited retention: nothing to squash
		return 0, nil
	}
	if retain < 1 {
		retain = 1
	}

	squashed := 0
	for {
		var numbers []uint64
		err := meta.View(func(txn store.Txn) error {
			var e error
			numbers, e = listVersionNumbers(txn, domain, repo)
			return e
		})
		if err != nil {
			return squashed, err
		}
		if len(numbers) <= retain {
			break
		}

		oldest := numbers[0]
		err = meta.Update(func(txn store.Txn) error {
			return deleteVersionTx(txn, domain, repo, oldest, &settings)
		})
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				return squashed, status.ErrConcurrentModification.Wrap(err)
			}
			return squashed, err
		}
		squashed++

		settings.l.Debug("squashed version for retention",
			zap.String("domain", domain),
			zap.String("repo", repo),
			zap.Uint64("version", oldest),
		)
		if settings.withMetrics {
			ensureMetrics()
			metricsInc(versionMetrics.VersionsSquashed)
		}
	}
	return squashed, nil
}
