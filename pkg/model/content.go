package model

import (
	"encoding/hex"
	"sort"
	"time"

	blake2b "github.com/minio/blake2b-simd"
)

// ContentUnit is an immutable record representing one piece of managed
// content. Units are identified externally by a natural key (a tuple of
// attributes defined by the content type, e.g. sha256 + relative path)
// and internally by an opaque ID.
type ContentUnit struct {
	ID         string            `json:"id" yaml:"id"`
	Domain     string            `json:"domain" yaml:"domain"`
	Type       string            `json:"type" yaml:"type"`
	NaturalKey map[string]string `json:"naturalKey" yaml:"naturalKey"`

	// UniquenessKey is the attribute content units compete on within a
	// single repository version (e.g. a relative path). Empty means the
	// unit does not compete with any other unit.
	UniquenessKey string `json:"uniquenessKey,omitempty" yaml:"uniquenessKey,omitempty"`

	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_         struct{}
}

// ContentUnits is a sortable collection of content units
type ContentUnits []ContentUnit

func (c ContentUnits) Len() int {
	return len(c)
}

func (c ContentUnits) Swap(i, j int) {
	c[i], c[j] = c[j], c[i]
}

func (c ContentUnits) Less(i, j int) bool {
	return c[i].ID < c[j].ID
}

// Digest computes the unique natural-key digest for this unit, scoped by
// domain and content type. Two units with the same natural key always
// yield the same digest, regardless of ID or metadata.
func (c ContentUnit) Digest() string {
	h := blake2b.New256()
	_, _ = h.Write([]byte(c.Domain))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(c.Type))
	_, _ = h.Write([]byte{0})

	fields := make([]string, 0, len(c.NaturalKey))
	for k := range c.NaturalKey {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		_, _ = h.Write([]byte(k))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(c.NaturalKey[k]))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateContent checks a content unit before registration
func ValidateContent(unit ContentUnit) error {
	if unit.Domain == "" {
		return ErrDomainRequired
	}
	if unit.Type == "" {
		return ErrContentTypeRequired
	}
	if len(unit.NaturalKey) == 0 {
		return ErrNaturalKeyRequired
	}
	return nil
}
