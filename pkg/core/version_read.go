package core

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// GetVersion retrieves a version descriptor
func GetVersion(domain, repo string, number uint64, meta store.Store, opts ...Option) (model.VersionDescriptor, error) {
	_ = defaultSettings(opts)

	var descriptor model.VersionDescriptor
	err := meta.View(func(txn store.Txn) error {
		var e error
		descriptor, e = getVersion(txn, domain, repo, number)
		return e
	})
	return descriptor, err
}

// ListVersions returns all versions of a repository in ascending number order
func ListVersions(domain, repo string, meta store.Store, opts ...Option) (model.VersionDescriptors, error) {
	versions := make(model.VersionDescriptors, 0, 16)

	err := ListVersionsApply(domain, repo, meta, func(version model.VersionDescriptor) error {
		versions = append(versions, version)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return versions, nil
}

// ListVersionsApply applies a function to every version descriptor of a
// repository, in ascending number order
func ListVersionsApply(domain, repo string, meta store.Store, apply func(model.VersionDescriptor) error, opts ...Option) error {
	_ = defaultSettings(opts)

	return meta.View(func(txn store.Txn) error {
		if _, err := getRepo(txn, domain, repo); err != nil {
			return err
		}

		it := txn.Scan(model.VersionKeyPrefix(domain, repo))
		defer it.Close()

		for it.Next() {
			data, err := it.Value()
			if err != nil {
				return err
			}
			var descriptor model.VersionDescriptor
			if err = unmarshal(data, &descriptor); err != nil {
				return err
			}
			if err = apply(descriptor); err != nil {
				return err
			}
		}
		return nil
	})
}

// VersionContent returns the IDs of all content units visible at a version,
// in sorted order
func VersionContent(domain, repo string, number uint64, meta store.Store, opts ...Option) ([]string, error) {
	return versionSet(domain, repo, number, meta, opts, func(ref model.ContentRef, n uint64) bool {
		return ref.VisibleAt(n)
	})
}

// VersionAdded returns the IDs of the content units added at a version
func VersionAdded(domain, repo string, number uint64, meta store.Store, opts ...Option) ([]string, error) {
	return versionSet(domain, repo, number, meta, opts, func(ref model.ContentRef, n uint64) bool {
		return ref.VersionAdded == n
	})
}

// VersionRemoved returns the IDs of the content units removed at a version
func VersionRemoved(domain, repo string, number uint64, meta store.Store, opts ...Option) ([]string, error) {
	return versionSet(domain, repo, number, meta, opts, func(ref model.ContentRef, n uint64) bool {
		return ref.VersionRemoved != nil && *ref.VersionRemoved == n
	})
}

func versionSet(domain, repo string, number uint64, meta store.Store, opts []Option, selects func(model.ContentRef, uint64) bool) ([]string, error) {
	_ = defaultSettings(opts)

	ids := make([]string, 0, 64)
	err := meta.View(func(txn store.Txn) error {
		if _, e := getVersion(txn, domain, repo, number); e != nil {
			return e
		}

		rows, e := loadLedger(txn, domain, repo)
		if e != nil {
			return e
		}
		for _, row := range rows {
			if selects(row.ref, number) {
				ids = append(ids, row.ref.ContentID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)
	return ids, nil
}

// VersionContentUnits materializes the full content unit descriptors
// visible at a version. Descriptors are fetched concurrently.
func VersionContentUnits(domain, repo string, number uint64, meta store.Store, opts ...Option) (model.ContentUnits, error) {
	settings := defaultSettings(opts)

	ids, err := VersionContent(domain, repo, number, meta, opts...)
	if err != nil {
		return nil, err
	}

	units := make(model.ContentUnits, len(ids))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(settings.concurrentFetch)

	for i, contentID := range ids {
		i, contentID := i, contentID
		g.Go(func() error {
			return meta.View(func(txn store.Txn) error {
				unit, e := getContentByID(txn, domain, contentID)
				if e != nil {
					return e
				}
				units[i] = unit
				return nil
			})
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// VersionDiff computes the content difference between two versions of the
// same repository
func VersionDiff(domain, repo string, from, to uint64, meta store.Store, opts ...Option) (model.VersionDiff, error) {
	_ = defaultSettings(opts)

	diff := model.VersionDiff{
		Domain: domain,
		Repo:   repo,
		From:   from,
		To:     to,
	}

	err := meta.View(func(txn store.Txn) error {
		if _, e := getVersion(txn, domain, repo, from); e != nil {
			return e
		}
		if _, e := getVersion(txn, domain, repo, to); e != nil {
			return e
		}

		rows, e := loadLedger(txn, domain, repo)
		if e != nil {
			return e
		}
		fromSet := contentAt(rows, from)
		toSet := contentAt(rows, to)

		for contentID := range toSet {
			if _, present := fromSet[contentID]; !present {
				diff.Added = append(diff.Added, contentID)
			}
		}
		for contentID := range fromSet {
			if _, present := toSet[contentID]; !present {
				diff.Removed = append(diff.Removed, contentID)
			}
		}
		return nil
	})
	if err != nil {
		return model.VersionDiff{}, err
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	return diff, nil
}
