package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdepot/depot/pkg/core/status"
	"github.com/contentdepot/depot/pkg/store"
)

// squashFixture builds a repo with a busy version history:
//
//	v1: +a +b +c +d +e
//	v2: -b -c -d -e  +f +g +h +i
//	v3: -g -i        +c +d
//	v4: -d -h        +e +i
func squashFixture(t *testing.T, meta store.Store) map[string]string {
	makeRepo(t, meta, "repo-1", 0)
	ids := registerUnits(t, meta, "a", "b", "c", "d", "e", "f", "g", "h", "i")

	steps := []VersionParams{
		{Add: idsOf(ids, "a", "b", "c", "d", "e")},
		{Remove: idsOf(ids, "b", "c", "d", "e"), Add: idsOf(ids, "f", "g", "h", "i")},
		{Remove: idsOf(ids, "g", "i"), Add: idsOf(ids, "c", "d")},
		{Remove: idsOf(ids, "d", "h"), Add: idsOf(ids, "e", "i")},
	}
	for _, params := range steps {
		_, err := CreateVersion(testDomain, "repo-1", params, meta)
		require.NoError(t, err)
	}
	return ids
}

func TestDeleteVersionPreservesSurvivors(t *testing.T) {
	meta := testMeta(t)
	ids := squashFixture(t, meta)

	require.NoError(t, DeleteVersion(testDomain, "repo-1", 2, meta))

	// the squashed version is gone and its number is not reused
	_, err := GetVersion(testDomain, "repo-1", 2, meta)
	require.ErrorIs(t, err, status.ErrVersionNotFound)
	_, err = VersionContent(testDomain, "repo-1", 2, meta)
	require.ErrorIs(t, err, status.ErrVersionNotFound)

	// every surviving version keeps its exact content set
	content, err := VersionContent(testDomain, "repo-1", 1, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "a", "b", "c", "d", "e"), content)

	content, err = VersionContent(testDomain, "repo-1", 3, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "a", "c", "d", "f", "h"), content)

	content, err = VersionContent(testDomain, "repo-1", 4, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "a", "c", "e", "f", "i"), content)

	// the inheriting version absorbs the squashed changes: content kept
	// across the boundary now counts as added there, and removals of the
	// deleted version roll forward
	added, err := VersionAdded(testDomain, "repo-1", 3, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "f", "h"), added)

	removed, err := VersionRemoved(testDomain, "repo-1", 3, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "b", "e"), removed)
}

func TestDeleteLatestVersionRollsBack(t *testing.T) {
	meta := testMeta(t)
	ids := squashFixture(t, meta)

	require.NoError(t, DeleteVersion(testDomain, "repo-1", 4, meta))

	// the repo state rolls back to version 3
	versions, err := ListVersions(testDomain, "repo-1", meta)
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, uint64(3), versions[len(versions)-1].Number)

	content, err := VersionContent(testDomain, "repo-1", 3, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "a", "c", "d", "f", "h"), content)

	// version numbers are never reused after a rollback
	v5, err := CreateVersion(testDomain, "repo-1", VersionParams{}, meta)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v5.Number)
}

func TestDeleteVersionChain(t *testing.T) {
	meta := testMeta(t)
	ids := squashFixture(t, meta)

	// squash every version but the latest, one at a time
	for _, n := range []uint64{0, 1, 2, 3} {
		require.NoError(t, DeleteVersion(testDomain, "repo-1", n, meta))

		content, err := VersionContent(testDomain, "repo-1", 4, meta)
		require.NoError(t, err)
		assert.Equal(t, idsOf(ids, "a", "c", "e", "f", "i"), content)
	}

	versions, err := ListVersions(testDomain, "repo-1", meta)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, uint64(4), versions[0].Number)

	// everything visible now counts as added at the last survivor
	added, err := VersionAdded(testDomain, "repo-1", 4, meta)
	require.NoError(t, err)
	assert.Equal(t, idsOf(ids, "a", "c", "e", "f", "i"), added)
}

func TestDeleteVersionNotFound(t *testing.T) {
	meta := testMeta(t)
	makeRepo(t, meta, "repo-1", 0)

	err := DeleteVersion(testDomain, "repo-1", 7, meta)
	require.ErrorIs(t, err, status.ErrVersionNotFound)
}

func TestDeleteLastVersion(t *testing.T) {
	meta := testMeta(t)
	makeRepo(t, meta, "repo-1", 0)

	// the sole version of a repo cannot be deleted
	err := DeleteVersion(testDomain, "repo-1", 0, meta)
	require.ErrorIs(t, err, status.ErrLastVersion)
}

func TestDeleteVersionCascadeHook(t *testing.T) {
	meta := testMeta(t)
	squashFixture(t, meta)

	type deletion struct {
		domain string
		repo   string
		number uint64
	}
	var seen []deletion

	err := DeleteVersion(testDomain, "repo-1", 2, meta,
		WithVersionDeletedHook(func(domain, repo string, number uint64) error {
			seen = append(seen, deletion{domain, repo, number})
			return nil
		}))
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, deletion{testDomain, "repo-1", 2}, seen[0])
}

func TestDeleteVersionHookFailureAborts(t *testing.T) {
	meta := testMeta(t)
	squashFixture(t, meta)

	boom := status.ErrContentReferenced
	err := DeleteVersion(testDomain, "repo-1", 2, meta,
		WithVersionDeletedHook(func(domain, repo string, number uint64) error {
			return boom
		}))
	require.ErrorIs(t, err, boom)

	// the failed cascade rolled the squash back
	_, err = GetVersion(testDomain, "repo-1", 2, meta)
	require.NoError(t, err)
}
