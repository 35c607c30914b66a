package core

import (
	"time"

	"go.uber.org/zap"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// WildcardRemove clears the whole content set when passed in
// VersionParams.Remove.
const WildcardRemove = "*"

// VersionParams describes the content mutation producing a new version.
type VersionParams struct {
	// Add lists content unit IDs to associate with the new version
	Add []string

	// Remove lists content unit IDs to dissociate, or the single element
	// "*" to clear all current content first
	Remove []string

	// BaseVersion forks the new version from an earlier version instead
	// of the latest: the content set is reset to the base version's, then
	// Remove and Add are applied on top
	BaseVersion *uint64
}

// CreateVersion creates the next version of a repository by applying adds
// and removes against the content ledger.
//
// A new version is created even when the resulting content set is
// identical to the previous one: every mutation bumps the version number.
// Version numbers are assigned from the repository's counter and are never
// reused.
//
// Within the new version, content units compete on their uniqueness key:
// an added unit silently replaces a present unit holding the same key,
// while two added units sharing a key fail the whole operation with
// ErrDuplicateKey. All ledger writes commit atomically.
func CreateVersion(domain, repo string, params VersionParams, meta store.Store, opts ...Option) (model.VersionDescriptor, error) {
	settings := defaultSettings(opts)
	if settings.withMetrics {
		ensureMetrics()
		defer metricsSince(time.Now(), versionMetrics.CreateDuration)
	}

	release, err := versionLocks.acquire(domain, repo, settings.lockTimeout)
	if err != nil {
		return model.VersionDescriptor{}, err
	}
	defer release()

	var descriptor model.VersionDescriptor
	err = meta.Update(func(txn store.Txn) error {
		var e error
		descriptor, e = createVersionTx(txn, domain, repo, params, &settings)
		return e
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return model.VersionDescriptor{}, status.ErrConcurrentModification.Wrap(err)
		}
		return model.VersionDescriptor{}, err
	}

	settings.l.Info("created repository version",
		zap.String("domain", domain),
		zap.String("repo", repo),
		zap.Uint64("version", descriptor.Number),
	)
	if settings.withMetrics {
		metricsInc(versionMetrics.VersionsCreated)
	}

	retained, err := enforceRetentionFromRepo(domain, repo, meta, settings)
	if err != nil {
		return model.VersionDescriptor{}, err
	}
	if retained > 0 {
		settings.l.Info("retention enforced after version creation",
			zap.String("domain", domain),
			zap.String("repo", repo),
			zap.Int("squashed", retained),
		)
	}
	return descriptor, nil
}

func createVersionTx(txn store.Txn, domain, repo string, params VersionParams, settings *Settings) (model.VersionDescriptor, error) {
	repoDescriptor, err := getRepo(txn, domain, repo)
	if err != nil {
		return model.VersionDescriptor{}, err
	}
	number := repoDescriptor.NextVersion

	rows, err := loadLedger(txn, domain, repo)
	if err != nil {
		return model.VersionDescriptor{}, err
	}
	open := openRows(rows)

	// seed the working set: either the currently open intervals, or the
	// content of the requested base version
	var working map[string]string
	if params.BaseVersion != nil {
		base := *params.BaseVersion
		if base >= number {
			return model.VersionDescriptor{}, status.ErrInvalidBaseVersion.WrapMessage(
				"version %d does not exist in repo %s/%s", base, domain, repo)
		}
		if _, e := getVersion(txn, domain, repo, base); e != nil {
			return model.VersionDescriptor{}, status.ErrInvalidBaseVersion.WrapMessage(
				"version %d of repo %s/%s", base, domain, repo)
		}
		working = contentAt(rows, base)
	} else {
		working = make(map[string]string, len(open))
		for contentID, row := range open {
			working[contentID] = row.ref.UniquenessKey
		}
	}

	if err = applyRemoves(working, params.Remove, settings.strictRemove, domain, repo); err != nil {
		return model.VersionDescriptor{}, err
	}
	if err = applyAdds(txn, working, params.Add, domain); err != nil {
		return model.VersionDescriptor{}, err
	}

	// reconcile the ledger: close intervals leaving the set, open
	// intervals entering it
	for contentID, row := range open {
		if _, keep := working[contentID]; keep {
			continue
		}
		row.ref.VersionRemoved = &number
		if e := putLedgerRow(txn, domain, repo, row.ref); e != nil {
			return model.VersionDescriptor{}, e
		}
	}
	for contentID, uniquenessKey := range working {
		if _, present := open[contentID]; present {
			continue
		}
		ref := model.ContentRef{
			ContentID:     contentID,
			UniquenessKey: uniquenessKey,
			VersionAdded:  number,
		}
		if e := putLedgerRow(txn, domain, repo, ref); e != nil {
			return model.VersionDescriptor{}, e
		}
	}

	descriptor := model.VersionDescriptor{
		Domain:      domain,
		Repo:        repo,
		Number:      number,
		BaseVersion: params.BaseVersion,
		Complete:    true,
		Timestamp:   time.Now().UTC(),
	}
	if err = putVersion(txn, descriptor); err != nil {
		return model.VersionDescriptor{}, err
	}

	repoDescriptor.NextVersion = number + 1
	if err = putRepo(txn, repoDescriptor); err != nil {
		return model.VersionDescriptor{}, err
	}
	return descriptor, nil
}

// applyRemoves drops content from the working set. Removing absent content
// is a no-op unless strict mode is requested.
func applyRemoves(working map[string]string, remove []string, strict bool, domain, repo string) error {
	for _, contentID := range remove {
		if contentID == WildcardRemove {
			for id := range working {
				delete(working, id)
			}
			continue
		}
		if _, present := working[contentID]; !present {
			if strict {
				return status.ErrContentNotFound.WrapMessage(
					"cannot remove content %s: not present in repo %s/%s", contentID, domain, repo)
			}
			continue
		}
		delete(working, contentID)
	}
	return nil
}

// applyAdds resolves added units and merges them into the working set,
// enforcing uniqueness-key semantics: an add replaces a present unit
// holding the same key, two adds sharing a key collide.
func applyAdds(txn store.Txn, working map[string]string, add []string, domain string) error {
	keyOwner := make(map[string]string, len(working))
	for contentID, uniquenessKey := range working {
		if uniquenessKey != "" {
			keyOwner[uniquenessKey] = contentID
		}
	}

	addedKeyOwner := make(map[string]string, len(add))
	for _, contentID := range add {
		unit, err := getContentByID(txn, domain, contentID)
		if err != nil {
			return err
		}

		if unit.UniquenessKey != "" {
			if owner, clash := addedKeyOwner[unit.UniquenessKey]; clash && owner != unit.ID {
				return status.ErrDuplicateKey.WrapMessage(
					"content %s and %s both claim key %q", owner, unit.ID, unit.UniquenessKey)
			}
			addedKeyOwner[unit.UniquenessKey] = unit.ID

			if owner, held := keyOwner[unit.UniquenessKey]; held && owner != unit.ID {
				// replace-by-key: the incumbent leaves the version
				delete(working, owner)
			}
			keyOwner[unit.UniquenessKey] = unit.ID
		}
		working[unit.ID] = unit.UniquenessKey
	}
	return nil
}
