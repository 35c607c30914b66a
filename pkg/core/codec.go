package core

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

func marshal(v interface{}) ([]byte, error) {
	return jsoniter.Marshal(v)
}

func unmarshal(data []byte, v interface{}) error {
	return jsoniter.Unmarshal(data, v)
}

func getRepo(txn store.Txn, domain, repo string) (model.RepoDescriptor, error) {
	data, err := txn.Get(model.RepoKey(domain, repo))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.RepoDescriptor{}, status.ErrRepoNotFound.WrapMessage("repo %s/%s", domain, repo)
		}
		return model.RepoDescriptor{}, err
	}

	var descriptor model.RepoDescriptor
	if err = unmarshal(data, &descriptor); err != nil {
		return model.RepoDescriptor{}, err
	}
	return descriptor, nil
}

func putRepo(txn store.Txn, descriptor model.RepoDescriptor) error {
	data, err := marshal(descriptor)
	if err != nil {
		return err
	}
	return txn.Set(model.RepoKey(descriptor.Domain, descriptor.Name), data)
}

func getVersion(txn store.Txn, domain, repo string, number uint64) (model.VersionDescriptor, error) {
	data, err := txn.Get(model.VersionKey(domain, repo, number))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.VersionDescriptor{}, status.ErrVersionNotFound.WrapMessage(
				"version %d of repo %s/%s", number, domain, repo)
		}
		return model.VersionDescriptor{}, err
	}

	var descriptor model.VersionDescriptor
	if err = unmarshal(data, &descriptor); err != nil {
		return model.VersionDescriptor{}, err
	}
	return descriptor, nil
}

func putVersion(txn store.Txn, descriptor model.VersionDescriptor) error {
	data, err := marshal(descriptor)
	if err != nil {
		return err
	}
	return txn.Set(model.VersionKey(descriptor.Domain, descriptor.Repo, descriptor.Number), data)
}

// getContentByID resolves a content unit through the ID reverse index
func getContentByID(txn store.Txn, domain, contentID string) (model.ContentUnit, error) {
	digest, err := txn.Get(model.ContentIDKey(domain, contentID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.ContentUnit{}, status.ErrContentNotFound.WrapMessage(
				"content %s in domain %s", contentID, domain)
		}
		return model.ContentUnit{}, err
	}

	data, err := txn.Get(model.ContentKey(domain, string(digest)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.ContentUnit{}, status.ErrContentNotFound.WrapMessage(
				"content %s in domain %s", contentID, domain)
		}
		return model.ContentUnit{}, err
	}

	var unit model.ContentUnit
	if err = unmarshal(data, &unit); err != nil {
		return model.ContentUnit{}, err
	}
	return unit, nil
}
