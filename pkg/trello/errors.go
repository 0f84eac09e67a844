package trello

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client. Callers should match with
// errors.Is rather than comparing strings.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the key/token pair was rejected.
	ErrUnauthorized = errors.New("invalid or expired credentials")

	// ErrRateLimited indicates the API rejected the request with a 429
	// after all retries were exhausted.
	ErrRateLimited = errors.New("rate limited by API")

	// ErrInvalidResource indicates an unknown resource type name.
	ErrInvalidResource = errors.New("unknown resource type")

	// ErrInvalidSubresource indicates a subresource name not declared by
	// the resource's descriptor.
	ErrInvalidSubresource = errors.New("invalid subresource")

	// ErrMissingCredentials indicates no API key or token was configured.
	ErrMissingCredentials = errors.New("missing API key or token")
)

// Error wraps errors from client operations with operation context.
type Error struct {
	// Op is the operation that failed, e.g. "Boards.Get".
	Op string

	// Err is the underlying error. Never nil.
	Err error

	// Msg is an optional human-readable message.
	Msg string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Msg, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from the Trello API.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is the error body returned by the API, if any.
	Message string

	// RequestID is the client-side correlation ID for the failed request.
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// Temporary reports whether the error is likely to resolve on retry.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// Unwrap maps well-known status codes to sentinel errors so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	}
	return nil
}

// opErr wraps err with operation context, passing nil through.
func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// opErrf wraps err with operation context and a message.
func opErrf(op string, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err, Msg: fmt.Sprintf(format, args...)}
}
