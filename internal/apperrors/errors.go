// Package apperrors defines the error taxonomy shared by services and the
// HTTP layer: not-found, storage, upstream-unavailable, validation.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors. Services wrap these with context via %w so handlers can
// classify failures with errors.Is.
var (
	// ErrNotFound means the requested record exists neither locally nor upstream.
	ErrNotFound = errors.New("not found")

	// ErrStorage means a transactional persistence fault.
	ErrStorage = errors.New("storage error")

	// ErrUpstreamUnavailable means the external provider has no credential
	// configured. Call sites decide whether that degrades to an empty result
	// or to not-found.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrValidation means malformed caller input.
	ErrValidation = errors.New("validation error")
)

// NotFound wraps ErrNotFound with a resource description.
func NotFound(resource, id string) error {
	return fmt.Errorf("%s %s: %w", resource, id, ErrNotFound)
}

// Storage wraps a persistence fault.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrStorage)
}

// Validation wraps a caller-input fault.
func Validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}
