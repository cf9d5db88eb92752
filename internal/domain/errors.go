package domain

import "errors"

var (
	// ErrInvalidRequest signals a caller-contract violation (missing items or query, bad keys).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTooManyItems signals an inline search over more records than allowed.
	ErrTooManyItems = errors.New("too many items")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrStoreNotConfigured signals a collection search without a record store.
	ErrStoreNotConfigured = errors.New("record store not configured")
	// ErrStoreUnavailable signals a record store failure.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
