// Package diagnose turns command failures into terminal diagnostics. The
// classification is a pure function; only the process entry point prints
// the result and exits.
package diagnose

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
	"syscall"

	"github.com/ntncli/ntn/internal/domain"
)

// Diagnostic is the rendered failure: a multi-line message and the exit
// code for the process.
type Diagnostic struct {
	Message  string
	ExitCode int
}

type contextError struct {
	err    error
	fields map[string]string
}

func (e *contextError) Error() string { return e.err.Error() }

func (e *contextError) Unwrap() error { return e.err }

// WithContext attaches extra diagnostic fields to an error. The fields
// are appended to the classified output, with credential-shaped values
// redacted.
func WithContext(err error, fields map[string]string) error {
	if err == nil || len(fields) == 0 {
		return err
	}
	return &contextError{err: err, fields: fields}
}

// Classify maps an error to a human-readable diagnostic. Priority:
// structured service error codes, then bare HTTP statuses, then
// connection-level network failures, then a generic report.
func Classify(err error, extra map[string]string) Diagnostic {
	fields := collectFields(err, extra)

	var lines []string
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		lines = []string{
			"not authenticated: no credentials on file",
			"hint: run `ntn auth login <token>` first",
		}
	case errors.Is(err, domain.ErrInvalidToken):
		lines = []string{
			"login failed: the service rejected the token as invalid credentials",
			"hint: check the integration token and try again",
		}
	default:
		lines = classifyError(err)
	}

	lines = append(lines, renderFields(fields)...)

	return Diagnostic{
		Message:  strings.Join(lines, "\n"),
		ExitCode: 1,
	}
}

func classifyError(err error) []string {
	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		return []string{"invalid input: " + invalid.Reason}
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if hint, ok := codeHints[apiErr.Code]; ok {
			return []string{
				fmt.Sprintf("service rejected the request (%s): %s", apiErr.Code, apiErr.Message),
				"hint: " + hint,
			}
		}
		return statusLines(apiErr.Status, apiErr.Message)
	}

	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		return statusLines(statusErr.Status, statusErr.Body)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return []string{
			"network failure: cannot resolve " + dnsErr.Name,
			"hint: check the API base URL and your network connection",
		}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return []string{
			"network failure: connection refused",
			"hint: the service endpoint is not accepting connections",
		}
	}

	// Argument-parser failures arrive as plain strings; they belong in
	// the invalid-input class alongside our own validation errors.
	message := err.Error()
	for _, fragment := range []string{"required flag", "unknown flag", "unknown command", "invalid argument", "accepts "} {
		if strings.Contains(message, fragment) {
			return []string{"invalid input: " + message}
		}
	}

	return []string{"error: " + message}
}

var codeHints = map[string]string{
	domain.CodeUnauthorized:       "the token is invalid or expired; run `ntn auth login <token>` with a fresh one",
	domain.CodeRestrictedResource: "the integration has no access to this resource; share it with the integration",
	domain.CodeObjectNotFound:     "the resource does not exist or is not shared with the integration",
	domain.CodeRateLimited:        "the service is rate limiting requests; wait a moment and retry",
	domain.CodeInvalidRequest:     "the request was malformed; check the identifiers and options",
	domain.CodeInvalidJSON:        "the request body was not valid JSON; check --filter/--sorts/--schema values",
	domain.CodeValidationError:    "the request failed service-side validation; check the supplied values",
	domain.CodeConflictError:      "the resource changed underneath the update; fetch it again and retry",
	domain.CodeServiceUnavailable: "the service is temporarily unavailable; retry later",
}

func statusLines(status int, detail string) []string {
	summary := fmt.Sprintf("request failed with HTTP %d", status)
	if detail != "" {
		summary += ": " + detail
	}

	var hint string
	switch {
	case status == http.StatusBadRequest:
		hint = "the request was malformed"
	case status == http.StatusUnauthorized:
		hint = "authentication failed; run `ntn auth login <token>`"
	case status == http.StatusForbidden:
		hint = "access to the resource is denied"
	case status == http.StatusNotFound:
		hint = "the resource was not found"
	case status == http.StatusTooManyRequests:
		hint = "rate limited; wait a moment and retry"
	case status >= 500:
		hint = "the service had an internal problem; retry later"
	default:
		return []string{summary}
	}

	return []string{summary, "hint: " + hint}
}

func collectFields(err error, extra map[string]string) map[string]string {
	fields := make(map[string]string, len(extra))
	for key, value := range extra {
		fields[key] = value
	}

	for current := err; current != nil; current = errors.Unwrap(current) {
		withFields, ok := current.(*contextError)
		if !ok {
			continue
		}
		for key, value := range withFields.fields {
			if _, exists := fields[key]; !exists {
				fields[key] = value
			}
		}
	}

	return fields
}

// No raw credential value may reach the diagnostic stream.
func renderFields(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		value := fields[key]
		if isSensitiveField(key) {
			value = "[redacted]"
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", key, value))
	}

	return lines
}

func isSensitiveField(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "token") || strings.Contains(lower, "secret")
}
