package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a stored
	// token and none is on file.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidToken is returned by login when the token validation call
	// fails. The validation call deliberately collapses "bad token" and
	// "service unreachable" into one outcome.
	ErrInvalidToken = errors.New("invalid credentials")
)

// InvalidInputError reports a malformed argument or option. It is raised
// before any network call is attempted.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func NewInvalidInput(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// Service error codes returned in structured error bodies.
const (
	CodeUnauthorized       = "unauthorized"
	CodeRestrictedResource = "restricted_resource"
	CodeObjectNotFound     = "object_not_found"
	CodeRateLimited        = "rate_limited"
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidJSON        = "invalid_json"
	CodeValidationError    = "validation_error"
	CodeConflictError      = "conflict_error"
	CodeServiceUnavailable = "service_unavailable"
)

// APIError is a structured rejection from the document service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("service error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("service error %s (status %d): %s", e.Code, e.Status, e.Message)
}

// StatusError is an HTTP-level failure without a structured service error
// body.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}
