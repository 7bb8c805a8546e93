package usecase

import "github.com/cockroachdb/errors"

// Sentinels shared by services and adapters; httpapi maps them to status codes.
var (
	// ErrInvalidInput rejects a query before any upstream call.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrDependencyUnavailable marks an upstream that is down, tripped or cancelled.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
