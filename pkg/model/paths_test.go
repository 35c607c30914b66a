package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionKeyOrdering(t *testing.T) {
	// lexicographic key order must match numeric version order
	numbers := []uint64{0, 1, 2, 9, 10, 11, 99, 100, 1000000}
	keys := make([]string, 0, len(numbers))
	for _, n := range numbers {
		keys = append(keys, VersionKey("d", "r", n))
	}
	assert.True(t, sort.StringsAreSorted(keys))
}

func TestParseVersionNumber(t *testing.T) {
	n, err := ParseVersionNumber(padVersion(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)

	_, err = ParseVersionNumber("not-a-number")
	require.Error(t, err)
}

func TestLedgerKeyRoundTrip(t *testing.T) {
	key := LedgerKey("my-domain", "my-repo", "2PpyHflCTTKEpTbBct8WK0i7PQV", 7)
	components, err := ParseLedgerKey(key)
	require.NoError(t, err)

	assert.Equal(t, "my-domain", components.Domain)
	assert.Equal(t, "my-repo", components.Repo)
	assert.Equal(t, "2PpyHflCTTKEpTbBct8WK0i7PQV", components.ContentID)
	assert.Equal(t, uint64(7), components.VersionAdded)
}

func TestParseLedgerKeyRejectsForeignKeys(t *testing.T) {
	_, err := ParseLedgerKey(RepoKey("d", "r"))
	require.Error(t, err)

	_, err = ParseLedgerKey("ledger/d/r/too/many/segments")
	require.Error(t, err)
}

func TestKeyPrefixes(t *testing.T) {
	assert.Contains(t, RepoKey("d", "r"), RepoKeyPrefix("d"))
	assert.Contains(t, VersionKey("d", "r", 1), VersionKeyPrefix("d", "r"))
	assert.Contains(t, LedgerKey("d", "r", "c", 1), LedgerKeyPrefix("d", "r"))
	assert.Contains(t, LedgerKey("d", "r", "c", 1), LedgerDomainPrefix("d"))
	assert.Contains(t, ContentKey("d", "deadbeef"), ContentKeyPrefix("d"))
}
