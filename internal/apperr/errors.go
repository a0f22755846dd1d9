// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

var (
	// ErrNotFound indicates the targeted note or tag does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported indicates an operation that requires a capability the
	// host did not wire up, e.g. media bytes without a blob store.
	ErrUnsupported = errors.New("unsupported operation")
)
