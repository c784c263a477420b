package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations. The API client maps backend
// HTTP statuses onto these so callers can switch on errors.Is.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnauthorized indicates a missing or rejected credential
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the credential lacks the required role
	ErrForbidden = errors.New("forbidden")

	// ErrBackendUnavailable indicates the backend API could not serve the
	// request (5xx, timeout, or open circuit breaker)
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrRateLimited indicates the backend throttled the request
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FieldErrors collects backend field-level validation messages (422
// responses) so forms can render them next to their inputs.
type FieldErrors map[string][]string

// Error implements the error interface with a compact field list.
func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed on %d field(s)", len(f))
}

// First returns the first message recorded for a field, or "".
func (f FieldErrors) First(field string) string {
	msgs := f[field]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}
