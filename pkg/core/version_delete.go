package core

import (
	"time"

	"go.uber.org/zap"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// DeleteVersion deletes a repository version by squashing its content
// changes into the surrounding timeline.
//
// The squash preserves the observable content set of every surviving
// version: only the deleted version's number disappears. Deleting the
// latest version rolls the repository state back to the previous version.
// Deleting the sole remaining version is forbidden.
func DeleteVersion(domain, repo string, number uint64, meta store.Store, opts ...Option) error {
	settings := defaultSettings(opts)
	if settings.withMetrics {
		ensureMetrics()
		defer metricsSince(time.Now(), versionMetrics.SquashDuration)
	}

	release, err := versionLocks.acquire(domain, repo, settings.lockTimeout)
	if err != nil {
		return err
	}
	defer release()

	err = meta.Update(func(txn store.Txn) error {
		return deleteVersionTx(txn, domain, repo, number, &settings)
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return status.ErrConcurrentModification.Wrap(err)
		}
		return err
	}

	settings.l.Info("squashed repository version",
		zap.String("domain", domain),
		zap.String("repo", repo),
		zap.Uint64("version", number),
	)
	if settings.withMetrics {
		metricsInc(versionMetrics.VersionsSquashed)
	}
	return nil
}

// deleteVersionTx performs the squash within an open transaction. The
// caller must hold the repository lock.
func deleteVersionTx(txn store.Txn, domain, repo string, number uint64, settings *Settings) error {
	if _, err := getRepo(txn, domain, repo); err != nil {
		return err
	}

	numbers, err := listVersionNumbers(txn, domain, repo)
	if err != nil {
		return err
	}
	found := false
	var next *uint64
	for _, n := range numbers {
		if n == number {
			found = true
			continue
		}
		if n > number && (next == nil || n < *next) {
			m := n
			next = &m
		}
	}
	if !found {
		return status.ErrVersionNotFound.WrapMessage("version %d of repo %s/%s", number, domain, repo)
	}
	if len(numbers) <= 1 {
		return status.ErrLastVersion.WrapMessage("version %d of repo %s/%s", number, domain, repo)
	}

	rows, err := loadLedger(txn, domain, repo)
	if err != nil {
		return err
	}
	plan := planSquash(rows, number, next)

	if err = validateSquash(plan.result, next); err != nil {
		return err
	}

	for _, key := range plan.deleteKeys {
		if e := txn.Delete(key); e != nil {
			return e
		}
	}
	for _, ref := range plan.writes {
		if e := putLedgerRow(txn, domain, repo, ref); e != nil {
			return e
		}
	}
	if err = txn.Delete(model.VersionKey(domain, repo, number)); err != nil {
		return err
	}

	for _, hook := range settings.versionDeletedHooks {
		if e := hook(domain, repo, number); e != nil {
			return e
		}
	}
	return nil
}

// squashPlan is the computed ledger rewrite for one squash operation
type squashPlan struct {
	deleteKeys []string
	writes     []model.ContentRef
	result     []model.ContentRef
}

// planSquash merges version v's adds and removes into the next surviving
// version, so that every surviving version keeps its exact content set.
//
// With next surviving version n:
//  1. rows spanning only squashed versions (added at v, removed at v or n)
//     are dropped;
//  2. a row removed at v whose content is re-added at n merges with the
//     re-adding row into one interval;
//  3. remaining rows added at v are re-anchored at n;
//  4. remaining rows removed at v are re-anchored at n.
//
// When v is the latest version there is no n: rows added at v are dropped
// and rows removed at v are reopened, rolling the repo state back.
func planSquash(rows []ledgerRow, v uint64, next *uint64) squashPlan {
	plan := squashPlan{
		deleteKeys: make([]string, 0, len(rows)),
		writes:     make([]model.ContentRef, 0, len(rows)),
		result:     make([]model.ContentRef, 0, len(rows)),
	}

	// re-adding rows at n, indexed by content, for the merge rule
	reAdded := make(map[string]ledgerRow, len(rows))
	if next != nil {
		for _, row := range rows {
			if row.ref.VersionAdded == *next {
				reAdded[row.ref.ContentID] = row
			}
		}
	}
	merged := make(map[string]bool, len(rows))

	for _, row := range rows {
		ref := row.ref

		switch {
		case ref.VersionAdded == v:
			if next == nil {
				// content introduced by the deleted latest version vanishes
				plan.deleteKeys = append(plan.deleteKeys, row.key)
				continue
			}
			if ref.VersionRemoved != nil && (*ref.VersionRemoved == v || *ref.VersionRemoved == *next) {
				// the interval collapses to nothing once v is gone
				plan.deleteKeys = append(plan.deleteKeys, row.key)
				continue
			}
			// re-anchor the add at the next surviving version
			plan.deleteKeys = append(plan.deleteKeys, row.key)
			ref.VersionAdded = *next
			plan.writes = append(plan.writes, ref)
			plan.result = append(plan.result, ref)

		case ref.VersionRemoved != nil && *ref.VersionRemoved == v:
			if next == nil {
				// deleting the latest version reopens the interval
				ref.VersionRemoved = nil
				plan.writes = append(plan.writes, ref)
				plan.result = append(plan.result, ref)
				continue
			}
			if readding, ok := reAdded[ref.ContentID]; ok {
				// merge [a, v) with [n, x) into [a, x)
				ref.VersionRemoved = readding.ref.VersionRemoved
				plan.deleteKeys = append(plan.deleteKeys, readding.key)
				merged[ref.ContentID] = true
				plan.writes = append(plan.writes, ref)
				plan.result = append(plan.result, ref)
				continue
			}
			n := *next
			ref.VersionRemoved = &n
			plan.writes = append(plan.writes, ref)
			plan.result = append(plan.result, ref)

		case next != nil && ref.VersionAdded == *next && merged[ref.ContentID]:
			// already folded into the merged interval
			continue

		default:
			plan.result = append(plan.result, ref)
		}
	}
	return plan
}

// validateSquash re-checks the uniqueness-key invariant on the version
// inheriting the squashed changes. A violation is a data-integrity fatal
// condition aborting the whole delete.
func validateSquash(result []model.ContentRef, next *uint64) error {
	keyOwner := make(map[string]string, len(result))
	for _, ref := range result {
		visible := ref.Open()
		if next != nil {
			visible = ref.VisibleAt(*next)
		}
		if !visible || ref.UniquenessKey == "" {
			continue
		}
		if owner, clash := keyOwner[ref.UniquenessKey]; clash && owner != ref.ContentID {
			return status.ErrDuplicateKey.WrapMessage(
				"squash would leave content %s and %s both claiming key %q",
				owner, ref.ContentID, ref.UniquenessKey)
		}
		keyOwner[ref.UniquenessKey] = ref.ContentID
	}
	return nil
}

// listVersionNumbers scans the version numbers of a repository in
// ascending order
func listVersionNumbers(txn store.Txn, domain, repo string) ([]uint64, error) {
	prefix := model.VersionKeyPrefix(domain, repo)
	numbers := make([]uint64, 0, 16)

	it := txn.Scan(prefix)
	defer it.Close()

	for it.Next() {
		n, err := model.ParseVersionNumber(it.Key()[len(prefix):])
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
