package model

type validationError string

func (e validationError) Error() string {
	return string(e)
}

const (
	// ErrDomainRequired is returned when an operation is missing its domain scope
	ErrDomainRequired validationError = "empty field: domain is required"

	// ErrRepoNameRequired is returned when a repo descriptor has no name
	ErrRepoNameRequired validationError = "empty field: repo name is required"

	// ErrContentTypeRequired is returned when a content unit declares no type
	ErrContentTypeRequired validationError = "empty field: content type is required"

	// ErrNaturalKeyRequired is returned when a content unit declares no natural key
	ErrNaturalKeyRequired validationError = "empty field: content natural key is required"
)
