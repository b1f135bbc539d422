package directory

import "github.com/brokertools/directory/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrRepository          = domain.ErrRepository
	ErrMalformedProjection = domain.ErrMalformedProjection
	ErrInvalidRequest      = domain.ErrInvalidRequest
)
