package lasr

import "github.com/kailas-cloud/lasr/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest     = domain.ErrInvalidRequest
	ErrNotFound           = domain.ErrNotFound
	ErrStoreNotConfigured = domain.ErrStoreNotConfigured
	ErrStoreUnavailable   = domain.ErrStoreUnavailable
)
