package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRepo(t *testing.T) {
	repo := RepoDescriptor{Domain: "d", Name: "my-repo-1"}
	require.NoError(t, ValidateRepo(repo))

	repo = RepoDescriptor{Name: "my-repo-1"}
	require.ErrorIs(t, ValidateRepo(repo), ErrDomainRequired)

	repo = RepoDescriptor{Domain: "d"}
	require.ErrorIs(t, ValidateRepo(repo), ErrRepoNameRequired)

	repo = RepoDescriptor{Domain: "d", Name: "with/slash"}
	require.Error(t, ValidateRepo(repo))

	repo = RepoDescriptor{Domain: "d", Name: "with space"}
	require.Error(t, ValidateRepo(repo))

	repo = RepoDescriptor{Domain: "d", Name: "répo-1"}
	require.NoError(t, ValidateRepo(repo))

	repo = RepoDescriptor{Domain: "d", Name: "r", RetainVersions: -1}
	require.Error(t, ValidateRepo(repo))
}

func TestContributorString(t *testing.T) {
	c := Contributor{Name: "Jane Doe", Email: "jane@example.com"}
	assert.Equal(t, "Jane Doe <jane@example.com>", c.String())

	c = Contributor{Name: "Jane Doe"}
	assert.Equal(t, "Jane Doe", c.String())

	c = Contributor{Email: "jane@example.com"}
	assert.Equal(t, "jane@example.com", c.String())
}

func TestContentRefVisibility(t *testing.T) {
	removed := uint64(5)
	ref := ContentRef{ContentID: "c", VersionAdded: 2, VersionRemoved: &removed}

	assert.False(t, ref.VisibleAt(1))
	assert.True(t, ref.VisibleAt(2))
	assert.True(t, ref.VisibleAt(4))
	assert.False(t, ref.VisibleAt(5))
	assert.False(t, ref.Open())

	open := ContentRef{ContentID: "c", VersionAdded: 2}
	assert.True(t, open.VisibleAt(100))
	assert.True(t, open.Open())
}
