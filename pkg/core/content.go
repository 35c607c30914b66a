package core

import (
	"time"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/errors"
	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// GetOrCreateContent registers a content unit by natural key, or returns
// the already registered unit for that key.
//
// The operation is idempotent and safe under concurrent calls with the
// same natural key: two simultaneous creators converge on a single unit.
// When the unit already exists, its recorded attributes win and the
// supplied metadata is discarded.
func GetOrCreateContent(unit model.ContentUnit, meta store.Store, opts ...Option) (model.ContentUnit, error) {
	settings := defaultSettings(opts)

	if err := model.ValidateContent(unit); err != nil {
		return model.ContentUnit{}, err
	}
	digest := unit.Digest()
	key := model.ContentKey(unit.Domain, digest)

	var result model.ContentUnit
	create := func(txn store.Txn) error {
		data, err := txn.Get(key)
		if err == nil {
			return unmarshal(data, &result)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		result = unit
		result.ID = ksuid.New().String()
		result.Timestamp = time.Now().UTC()

		data, err = marshal(result)
		if err != nil {
			return err
		}
		if err = txn.SetIfNotExists(key, data); err != nil {
			return err
		}
		return txn.Set(model.ContentIDKey(unit.Domain, result.ID), []byte(digest))
	}

	err := meta.Update(create)
	if errors.Is(err, store.ErrConflict) {
		// lost the creation race: the winner's row is now visible
		err = meta.View(func(txn store.Txn) error {
			data, e := txn.Get(key)
			if e != nil {
				return e
			}
			return unmarshal(data, &result)
		})
	}
	if err != nil {
		return model.ContentUnit{}, err
	}

	settings.l.Debug("content unit resolved",
		zap.String("domain", unit.Domain),
		zap.String("content_id", result.ID),
		zap.String("digest", digest),
	)
	return result, nil
}

// GetContent retrieves a content unit by ID
func GetContent(domain, contentID string, meta store.Store, opts ...Option) (model.ContentUnit, error) {
	_ = defaultSettings(opts)

	var unit model.ContentUnit
	err := meta.View(func(txn store.Txn) error {
		var e error
		unit, e = getContentByID(txn, domain, contentID)
		return e
	})
	return unit, err
}

// DeleteContent removes a fully orphaned content unit. A unit referenced
// by any ledger row, including a closed historical interval, cannot be
// deleted and the call fails with ErrContentReferenced.
func DeleteContent(domain, contentID string, meta store.Store, opts ...Option) error {
	settings := defaultSettings(opts)

	err := meta.Update(func(txn store.Txn) error {
		unit, e := getContentByID(txn, domain, contentID)
		if e != nil {
			return e
		}

		referenced, e := contentIsReferenced(txn, domain, contentID)
		if e != nil {
			return e
		}
		if referenced {
			return status.ErrContentReferenced.WrapMessage("content %s in domain %s", contentID, domain)
		}

		if e = txn.Delete(model.ContentKey(domain, unit.Digest())); e != nil {
			return e
		}
		return txn.Delete(model.ContentIDKey(domain, contentID))
	})
	if err != nil {
		return err
	}

	settings.l.Info("deleted orphan content unit",
		zap.String("domain", domain),
		zap.String("content_id", contentID),
	)
	return nil
}

// contentIsReferenced scans the domain ledger for any row, open or closed,
// referencing the content unit
func contentIsReferenced(txn store.Txn, domain, contentID string) (bool, error) {
	it := txn.Scan(model.LedgerDomainPrefix(domain))
	defer it.Close()

	for it.Next() {
		components, err := model.ParseLedgerKey(it.Key())
		if err != nil {
			return false, err
		}
		if components.ContentID == contentID {
			return true, nil
		}
	}
	return false, nil
}
