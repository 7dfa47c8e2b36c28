package tda

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoToken is returned when an authenticated method is called on a
// client that has no access token installed. This is a caller bug, not
// an API failure, but it is surfaced as an ordinary error so library
// consumers never have to recover from a panic.
var ErrNoToken = errors.New("tda: no access token set on client")

// StatusError is returned when the API responds with any status other
// than 200. The raw response body is carried verbatim for diagnostics.
// These errors are never retried by the client.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("tda: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsNotFound reports whether the error indicates a missing resource
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == 404
}

// ParseError is returned when the API responded 200 but the body did
// not match the expected schema. A malformed body will not become
// well-formed on retry, so these are never retried either.
type ParseError struct {
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("tda: failed to parse response: %v", e.Err)
}

// Unwrap returns the underlying deserialization failure
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedAccountError is returned when a securities account payload
// does not match any modeled account variant. The raw payload is kept so
// callers can inspect or log what the API actually sent.
type UnsupportedAccountError struct {
	Raw json.RawMessage
}

// Error implements the error interface
func (e *UnsupportedAccountError) Error() string {
	return "tda: unsupported securities account variant"
}
