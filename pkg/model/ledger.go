package model

// ContentRef is one row of the content presence ledger: content unit
// ContentID is associated with a repository starting at VersionAdded and
// ending just before VersionRemoved.
//
// The interval is half-open: [VersionAdded, VersionRemoved). A nil
// VersionRemoved means the content is still present in the latest version.
type ContentRef struct {
	ContentID string `json:"contentId" yaml:"contentId"`

	// UniquenessKey is denormalized from the content unit so that
	// competing units can be detected without loading every descriptor.
	UniquenessKey string `json:"uniquenessKey,omitempty" yaml:"uniquenessKey,omitempty"`

	VersionAdded   uint64  `json:"versionAdded" yaml:"versionAdded"`
	VersionRemoved *uint64 `json:"versionRemoved,omitempty" yaml:"versionRemoved,omitempty"`
	_              struct{}
}

// VisibleAt reports whether the row's interval covers version number n.
func (r ContentRef) VisibleAt(n uint64) bool {
	if r.VersionAdded > n {
		return false
	}
	return r.VersionRemoved == nil || *r.VersionRemoved > n
}

// Open reports whether the row's interval is still open, i.e. the content
// is present in the latest version.
func (r ContentRef) Open() bool {
	return r.VersionRemoved == nil
}
