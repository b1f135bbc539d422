package domain

import (
	"errors"
)

var (
	// ErrNotFound signals a missing listing (maps to 404 at the boundary).
	ErrNotFound = errors.New("not found")
	// ErrRepository signals a content repository failure (network, query, decode).
	ErrRepository = errors.New("content repository error")
	// ErrMalformedProjection signals a fetched document that could not be decoded at all.
	// Missing fields inside a decodable document are defaulted, not reported.
	ErrMalformedProjection = errors.New("malformed projection")
	// ErrInvalidRequest signals invalid search or comparison parameters.
	ErrInvalidRequest = errors.New("invalid request")
)

// RepositoryError wraps a content repository failure with the operation that caused it.
// errors.Is matches both ErrRepository and the underlying cause.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return ErrRepository.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *RepositoryError) Unwrap() []error { return []error{ErrRepository, e.Err} }

// NewRepositoryError creates a repository error for the given operation.
func NewRepositoryError(op string, err error) error {
	return &RepositoryError{Op: op, Err: err}
}
