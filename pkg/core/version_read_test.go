package core

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/model"
)

func TestListVersions(t *testing.T) {
	meta := testMeta(t)
	squashFixture(t, meta)

	versions, err := ListVersions(testDomain, "repo-1", meta)
	require.NoError(t, err)
	require.Len(t, versions, 5)
	for i, version := range versions {
		assert.Equal(t, uint64(i), version.Number)
		assert.Equal(t, "repo-1", version.Repo)
	}
}

func TestListVersionsRepoNotFound(t *testing.T) {
	meta := testMeta(t)

	_, err := ListVersions(testDomain, "no-such-repo", meta)
	require.ErrorIs(t, err, status.ErrRepoNotFound)
}

func TestVersionDiff(t *testing.T) {
	meta := testMeta(t)
	ids := squashFixture(t, meta)

	// v1 = {a b c d e}, v3 = {a c d f h}
	diff, err := VersionDiff(testDomain, "repo-1", 1, 3, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "f", "h"), diff.Added)
	assert.Equal(t, idsOf(ids, "b", "e"), diff.Removed)

	// the reverse diff mirrors it
	diff, err = VersionDiff(testDomain, "repo-1", 3, 1, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "b", "e"), diff.Added)
	assert.Equal(t, idsOf(ids, "f", "h"), diff.Removed)

	// diffing a version against itself is empty
	diff, err = VersionDiff(testDomain, "repo-1", 3, 3, meta)
	require.NoError(t, err)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Removed)
}

func TestVersionDiffNotFound(t *testing.T) {
	meta := testMeta(t)
	squashFixture(t, meta)

	_, err := VersionDiff(testDomain, "repo-1", 1, 42, meta)
	require.ErrorIs(t, err, status.ErrVersionNotFound)
}

func TestVersionContentUnits(t *testing.T) {
	meta := testMeta(t)
	makeRepo(t, meta, "repo-1", 0)
	ids := registerUnits(t, meta, "a.txt", "b.txt", "c.txt")

	_, err := CreateVersion(testDomain, "repo-1", VersionParams{
		Add: idsOf(ids, "a.txt", "b.txt", "c.txt"),
	}, meta)
	require.NoError(t, err)

	units, err := VersionContentUnits(testDomain, "repo-1", 1, meta, ConcurrentFetch(2))
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.True(t, sort.IsSorted(model.ContentUnits(units)))

	paths := make([]string, 0, len(units))
	for _, unit := range units {
		paths = append(paths, unit.NaturalKey["path"])
	}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "c.txt"}, paths)
}
