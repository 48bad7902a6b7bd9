package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig       = "CONFIG"
	ErrConnectivity = "CONNECTIVITY"
	ErrHTTP         = "HTTP"
	ErrParse        = "PARSE"
	ErrBusy         = "BUSY"
	ErrUnknown      = "UNKNOWN"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// CLI output follows the layout:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error

	// StatusCode is the HTTP status for ErrHTTP errors returned by the backend.
	// Zero when the request never got a response.
	StatusCode int
	// Timeout is set on ErrHTTP errors produced by the request deadline.
	Timeout bool
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrConnectivity code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrConnectivity,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewHTTPError reports a non-success status from the backend.
func NewHTTPError(status int) *Error {
	return &Error{
		Code:       ErrHTTP,
		Message:    fmt.Sprintf("HTTP error! status: %d", status),
		Suggestion: "The backend rejected the request. Try again in a moment.",
		StatusCode: status,
	}
}

// NewTimeoutError reports a request that did not settle before its deadline.
func NewTimeoutError(cause error) *Error {
	return &Error{
		Code:       ErrHTTP,
		Message:    "Request to backend timed out",
		Suggestion: "Raise --timeout or check the backend is responding",
		Cause:      cause,
		Timeout:    true,
	}
}

// NewParseError reports a response body that is not the expected JSON shape.
func NewParseError(cause error) *Error {
	return &Error{
		Code:       ErrParse,
		Message:    "Backend returned a malformed response",
		Suggestion: "Check that --base-url points at the analysis service",
		Cause:      cause,
	}
}

// NewConnectivityError reports a request that never reached the backend.
func NewConnectivityError(cause error) *Error {
	return &Error{
		Code:       ErrConnectivity,
		Message:    "Unable to reach backend",
		Suggestion: "Check your network connection and the configured base URL",
		Cause:      cause,
	}
}

// Error implements the error interface with the multi-line CLI layout.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Code == code
	}
	return false
}

// HTTPStatus returns the backend status code carried by err, if any.
func HTTPStatus(err error) (int, bool) {
	var gwErr *Error
	if errors.As(err, &gwErr) && gwErr.Code == ErrHTTP && gwErr.StatusCode != 0 {
		return gwErr.StatusCode, true
	}
	return 0, false
}

// IsTimeout reports whether err came from a request deadline.
func IsTimeout(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Timeout
}

// Human returns a single-line message suitable for a view region.
// Structured errors yield their Message; other errors their Error() text.
// Returns "" for nil or blank errors so callers can pick a fallback.
func Human(err error) string {
	if err == nil {
		return ""
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return strings.TrimSpace(gwErr.Message)
	}
	return strings.TrimSpace(err.Error())
}
