// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across repository/controller layers.
var (
	// ErrValidation indicates malformed or out-of-range input. The mutation
	// is rejected before any state change.
	ErrValidation = errors.New("validation failed")

	// ErrConstraint indicates a structural invariant violation, e.g. deleting
	// the last administrator.
	ErrConstraint = errors.New("constraint violated")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication or an invalid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrExternalService indicates the AI collaborator was unreachable or
	// returned an error. Callers degrade this to an informational response
	// rather than failing the request.
	ErrExternalService = errors.New("external service error")
)

// Validation wraps a reason into an ErrValidation chain.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Constraint wraps a reason into an ErrConstraint chain.
func Constraint(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstraint, fmt.Sprintf(format, args...))
}

// NotFound wraps a reason into an ErrNotFound chain.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Unauthorized wraps a reason into an ErrUnauthorized chain.
func Unauthorized(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// External wraps an upstream failure into an ErrExternalService chain,
// preserving the cause for logging.
func External(cause error) error {
	return fmt.Errorf("%w: %v", ErrExternalService, cause)
}
