package model

import (
	"time"
)

// VersionDescriptor represents an immutable, numbered snapshot of a
// repository's content set.
//
// The content set itself is not stored on the descriptor: it is derived
// from the ledger rows visible at this version number.
type VersionDescriptor struct {
	Domain string `json:"domain" yaml:"domain"`
	Repo   string `json:"repo" yaml:"repo"`
	Number uint64 `json:"number" yaml:"number"`

	// BaseVersion is set when this version was forked from a version
	// other than the immediately preceding one.
	BaseVersion *uint64 `json:"baseVersion,omitempty" yaml:"baseVersion,omitempty"`

	Complete  bool      `json:"complete" yaml:"complete"`
	Timestamp time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	_         struct{}
}

// VersionDescriptors is a sortable collection of version descriptors
type VersionDescriptors []VersionDescriptor

func (v VersionDescriptors) Len() int {
	return len(v)
}

func (v VersionDescriptors) Swap(i, j int) {
	v[i], v[j] = v[j], v[i]
}

func (v VersionDescriptors) Less(i, j int) bool {
	return v[i].Number < v[j].Number
}

// VersionDiff reports the content difference between two versions of the
// same repository.
type VersionDiff struct {
	Domain  string   `json:"domain" yaml:"domain"`
	Repo    string   `json:"repo" yaml:"repo"`
	From    uint64   `json:"from" yaml:"from"`
	To      uint64   `json:"to" yaml:"to"`
	Added   []string `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	_       struct{}
}
