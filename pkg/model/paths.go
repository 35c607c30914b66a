package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Store key layout. All metadata lives in a single KV namespace:
//
//	repos/{domain}/{repo}
//	versions/{domain}/{repo}/{number}
//	ledger/{domain}/{repo}/{contentID}/{versionAdded}
//	content/{domain}/{digest}
//	content-id/{domain}/{contentID}       -> digest (reverse index)
//
// Version numbers are zero-padded so that lexicographic key order matches
// numeric order.
const versionNumberWidth = 20

func padVersion(n uint64) string {
	return fmt.Sprintf("%0*d", versionNumberWidth, n)
}

// ParseVersionNumber parses a zero-padded version number from a key segment
func ParseVersionNumber(segment string) (uint64, error) {
	n, err := strconv.ParseUint(segment, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version number segment %q: %w", segment, err)
	}
	return n, nil
}

// RepoKey yields the store key for a repo descriptor
func RepoKey(domain, repo string) string {
	return fmt.Sprint("repos/", domain, "/", repo)
}

// RepoKeyPrefix yields the store key prefix enumerating all repos in a domain
func RepoKeyPrefix(domain string) string {
	return fmt.Sprint("repos/", domain, "/")
}

// VersionKey yields the store key for a version descriptor
func VersionKey(domain, repo string, number uint64) string {
	return fmt.Sprint("versions/", domain, "/", repo, "/", padVersion(number))
}

// VersionKeyPrefix yields the store key prefix enumerating all versions of a repo
func VersionKeyPrefix(domain, repo string) string {
	return fmt.Sprint("versions/", domain, "/", repo, "/")
}

// LedgerKey yields the store key for a single ledger row
func LedgerKey(domain, repo, contentID string, versionAdded uint64) string {
	return fmt.Sprint("ledger/", domain, "/", repo, "/", contentID, "/", padVersion(versionAdded))
}

// LedgerKeyPrefix yields the store key prefix enumerating all ledger rows of a repo
func LedgerKeyPrefix(domain, repo string) string {
	return fmt.Sprint("ledger/", domain, "/", repo, "/")
}

// LedgerDomainPrefix yields the store key prefix enumerating all ledger rows in a domain
func LedgerDomainPrefix(domain string) string {
	return fmt.Sprint("ledger/", domain, "/")
}

// ContentKey yields the store key for a content unit, by natural-key digest
func ContentKey(domain, digest string) string {
	return fmt.Sprint("content/", domain, "/", digest)
}

// ContentKeyPrefix yields the store key prefix enumerating all content units in a domain
func ContentKeyPrefix(domain string) string {
	return fmt.Sprint("content/", domain, "/")
}

// ContentIDKey yields the store key of the ID -> digest reverse index entry
func ContentIDKey(domain, contentID string) string {
	return fmt.Sprint("content-id/", domain, "/", contentID)
}

// LedgerKeyComponents are the path parts of a parsed ledger row key
type LedgerKeyComponents struct {
	Domain       string
	Repo         string
	ContentID    string
	VersionAdded uint64
}

// ParseLedgerKey decomposes a ledger row key
func ParseLedgerKey(key string) (LedgerKeyComponents, error) {
	cs := strings.Split(key, "/")
	if len(cs) != 5 || cs[0] != "ledger" {
		return LedgerKeyComponents{}, fmt.Errorf("not a ledger key: %q", key)
	}
	n, err := ParseVersionNumber(cs[4])
	if err != nil {
		return LedgerKeyComponents{}, err
	}
	return LedgerKeyComponents{
		Domain:       cs[1],
		Repo:         cs[2],
		ContentID:    cs[3],
		VersionAdded: n,
	}, nil
}
