package core

import (
	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// ListRepos returns all repos in a domain, in name order
func ListRepos(domain string, meta store.Store, opts ...Option) (model.RepoDescriptors, error) {
	repos := make(model.RepoDescriptors, 0, 16)

	err := ListReposApply(domain, meta, func(repo model.RepoDescriptor) error {
		repos = append(repos, repo)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return repos, nil
}

// ListReposApply applies a function to every repo descriptor in a domain,
// in name order
func ListReposApply(domain string, meta store.Store, apply func(model.RepoDescriptor) error, opts ...Option) error {
	_ = defaultSettings(opts)

	return meta.View(func(txn store.Txn) error {
		it := txn.Scan(model.RepoKeyPrefix(domain))
		defer it.Close()

		for it.Next() {
			data, err := it.Value()
			if err != nil {
				return err
			}
			var descriptor model.RepoDescriptor
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
