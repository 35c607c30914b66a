package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContentUnit() ContentUnit {
	return ContentUnit{
		Domain: "test-domain",
		Type:   "file",
		NaturalKey: map[string]string{
			"sha256": "aabbcc",
			"path":   "data/a.txt",
		},
		UniquenessKey: "data/a.txt",
	}
}

func TestContentDigestDeterministic(t *testing.T) {
	unit := testContentUnit()
	first := unit.Digest()
	require.NotEmpty(t, first)

	// digest is stable over repeated calls and map iteration orders
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, testContentUnit().Digest())
	}
}

func TestContentDigestIgnoresIdentityAndMetadata(t *testing.T) {
	unit := testContentUnit()
	base := unit.Digest()

	unit.ID = "2PpyHflCTTKEpTbBct8WK0i7PQV"
	unit.Metadata = map[string]string{"origin": "sync"}
	assert.Equal(t, base, unit.Digest())
}

func TestContentDigestScoping(t *testing.T) {
	base := testContentUnit().Digest()

	other := testContentUnit()
	other.Type = "package"
	assert.NotEqual(t, base, other.Digest())

	other = testContentUnit()
	other.Domain = "other-domain"
	assert.NotEqual(t, base, other.Digest())

	other = testContentUnit()
	other.NaturalKey["path"] = "data/b.txt"
	assert.NotEqual(t, base, other.Digest())
}

func TestContentDigestFieldBoundaries(t *testing.T) {
	// concatenation across natural key fields must not alias
	a := ContentUnit{
		Domain:     "d",
		Type:       "t",
		NaturalKey: map[string]string{"ab": "c"},
	}
	b := ContentUnit{
		Domain:     "d",
		Type:       "t",
		NaturalKey: map[string]string{"a": "bc"},
	}
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestValidateContent(t *testing.T) {
	require.NoError(t, ValidateContent(testContentUnit()))

	unit := testContentUnit()
	unit.Domain = ""
	require.ErrorIs(t, ValidateContent(unit), ErrDomainRequired)

	unit = testContentUnit()
	unit.Type = ""
	require.ErrorIs(t, ValidateContent(unit), ErrContentTypeRequired)

	unit = testContentUnit()
	unit.NaturalKey = nil
	require.ErrorIs(t, ValidateContent(unit), ErrNaturalKeyRequired)
}
