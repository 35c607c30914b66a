package core

import (
	"strings"

	"go.uber.org/zap"

	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// PurgeReport summarizes an orphan content sweep
type PurgeReport struct {
	Scanned  int  `json:"scanned" yaml:"scanned"`
	Deleted  int  `json:"deleted" yaml:"deleted"`
	Retained int  `json:"retained" yaml:"retained"`
	DryRun   bool `json:"dryRun" yaml:"dryRun"`
}

// PurgeContent deletes all content units in a domain that are no longer
// referenced by any ledger row of any repository, including historical
// intervals. With WithDryRun, the report is computed without deleting
// anything.
func PurgeContent(domain string, meta store.Store, opts ...Option) (PurgeReport, error) {
	settings := defaultSettings(opts)

	report := PurgeReport{DryRun: settings.dryRun}
	sweep := func(txn store.Txn) error {
		// the transaction may be retried on conflict: start over
		report = PurgeReport{DryRun: settings.dryRun}

		referenced, err := referencedContent(txn, domain)
		if err != nil {
			return err
		}

		contentPrefix := model.ContentKeyPrefix(domain)
		type orphan struct {
			digest    string
			contentID string
		}
		orphans := make([]orphan, 0, 64)

		it := txn.Scan(contentPrefix)
		for it.Next() {
			report.Scanned++

			data, err := it.Value()
			if err != nil {
				it.Close()
				return err
			}
			var unit model.ContentUnit
			if err = unmarshal(data, &unit); err != nil {
				it.Close()
				return err
			}
			if referenced[unit.ID] {
				report.Retained++
				continue
			}
			orphans = append(orphans, orphan{
				digest:    strings.TrimPrefix(it.Key(), contentPrefix),
				contentID: unit.ID,
			})
		}
		it.Close()

		report.Deleted = len(orphans)
		if settings.dryRun {
			return nil
		}
		for _, o := range orphans {
			if err := txn.Delete(model.ContentKey(domain, o.digest)); err != nil {
				return err
			}
			if err := txn.Delete(model.ContentIDKey(domain, o.contentID)); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if settings.dryRun {
		err = meta.View(sweep)
	} else {
		err = meta.Update(sweep)
	}
	if err != nil {
		return PurgeReport{}, err
	}

	settings.l.Info("purged orphan content",
		zap.String("domain", domain),
		zap.Int("scanned", report.Scanned),
		zap.Int("deleted", report.Deleted),
		zap.Int("retained", report.Retained),
		zap.Bool("dry_run", report.DryRun),
	)
	if settings.withMetrics && !settings.dryRun {
		ensureMetrics()
		for i := 0; i < report.Deleted; i++ {
			metricsInc(versionMetrics.ContentPurged)
		}
	}
	return report, nil
}

// referencedContent indexes every content unit referenced by any ledger
// row in the domain
func referencedContent(txn store.Txn, domain string) (map[string]bool, error) {
	referenced := make(map[string]bool, 256)

	it := txn.Scan(model.LedgerDomainPrefix(domain))
	defer it.Close()

	for it.Next() {
		components, err := model.ParseLedgerKey(it.Key())
		if err != nil {
			return nil, err
		}
		referenced[components.ContentID] = true
	}
	return referenced, nil
}
