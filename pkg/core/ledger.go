package core

import (
	"github.com/contentdepot/depot/pkg/model"
	"github.com/contentdepot/depot/pkg/store"
)

// ledgerRow pairs a ledger ContentRef with the store key it was read from.
// The key embeds (contentID, versionAdded): rewriting versionAdded during a
// squash means deleting the old key and writing a new one.
type ledgerRow struct {
	key string
	ref model.ContentRef
}

// loadLedger reads all ledger rows of a repository, in key order
func loadLedger(txn store.Txn, domain, repo string) ([]ledgerRow, error) {
	rows := make([]ledgerRow, 0, 128)

	it := txn.Scan(model.LedgerKeyPrefix(domain, repo))
	defer it.Close()

	for it.Next() {
		data, err := it.Value()
		if err != nil {
			return nil, err
		}
		var ref model.ContentRef
		if err = unmarshal(data, &ref); err != nil {
			return nil, err
		}
		rows = append(rows, ledgerRow{key: it.Key(), ref: ref})
	}
	return rows, nil
}

func putLedgerRow(txn store.Txn, domain, repo string, ref model.ContentRef) error {
	data, err := marshal(ref)
	if err != nil {
		return err
	}
	return txn.Set(model.LedgerKey(domain, repo, ref.ContentID, ref.VersionAdded), data)
}

// openRows indexes the currently open interval per content unit. The ledger
// invariant guarantees at most one open row per content.
func openRows(rows []ledgerRow) map[string]ledgerRow {
	open := make(map[string]ledgerRow, len(rows))
	for _, row := range rows {
		if row.ref.Open() {
			open[row.ref.ContentID] = row
		}
	}
	return open
}

// contentAt computes the content set visible at version number n, as a map
// from content ID to the uniqueness key recorded on its ledger row
func contentAt(rows []ledgerRow, n uint64) map[string]string {
	visible := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.ref.VisibleAt(n) {
			visible[row.ref.ContentID] = row.ref.UniquenessKey
		}
	}
	return visible
}
