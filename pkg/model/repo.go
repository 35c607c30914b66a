package model

import (
	"fmt"
	"time"
	"unicode"
)

// RepoDescriptor represents a named, versioned collection of content units.
type RepoDescriptor struct {
	Domain      string      `json:"domain" yaml:"domain"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Timestamp   time.Time   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Contributor Contributor `json:"contributor,omitempty" yaml:"contributor,omitempty"`

	// RetainVersions caps how many versions this repository keeps.
	// Zero means unlimited.
	RetainVersions int `json:"retainVersions,omitempty" yaml:"retainVersions,omitempty"`

	// NextVersion is the number assigned to the next created version.
	// Numbers are never reused, even after versions are squashed away.
	NextVersion uint64 `json:"nextVersion" yaml:"nextVersion"`
	_           struct{}
}

// RepoDescriptors is a sortable collection of repo descriptors
type RepoDescriptors []RepoDescriptor

func (r RepoDescriptors) Len() int {
	return len(r)
}

func (r RepoDescriptors) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

func (r RepoDescriptors) Less(i, j int) bool {
	return r[i].Name < r[j].Name
}

// Contributor who created the object
type Contributor struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	_     struct{}
}

func (c *Contributor) String() string {
	if c.Email == "" {
		return c.Name
	}
	if c.Name == "" {
		return c.Email
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

// ValidateRepo checks a repo descriptor before creation
func ValidateRepo(repo RepoDescriptor) error {
	if repo.Domain == "" {
		return ErrDomainRequired
	}
	if repo.Name == "" {
		return ErrRepoNameRequired
	}
	for i, c := range repo.Name {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && !unicode.Is(unicode.Hyphen, c) {
			return fmt.Errorf("invalid name: repo name:%s contains unsupported character %q",
				repo.Name,
				string([]rune(repo.Name)[i]))
		}
	}
	if repo.RetainVersions < 0 {
		return fmt.Errorf("invalid retention: repo %s declares a negative version retention count", repo.Name)
	}
	return nil
}
