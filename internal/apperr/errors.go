// Package apperr holds the HTTP-facing error taxonomy shared by handlers and middleware.
package apperr

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
)

// Error is an error carrying the status code and the message shown to the client.
type Error struct {
	Status  int    // HTTP status code
	Message string // Client-facing message
	Err     error  // Underlying cause, never rendered
}

// Error renders the message followed by the cause, for logs only.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

func newError(status int, msg string, cause error) *Error {
	return &Error{Status: status, Message: msg, Err: cause}
}

// BadRequest is returned for malformed input such as an invalid id (400).
func BadRequest(msg string) *Error { return newError(http.StatusBadRequest, msg, nil) }

// Unauthorized is returned when no valid credential was presented (401).
func Unauthorized(msg string) *Error { return newError(http.StatusUnauthorized, msg, nil) }

// Forbidden is returned for credential mismatches and insufficient roles (403).
func Forbidden(msg string) *Error { return newError(http.StatusForbidden, msg, nil) }

// NotFound is returned when the addressed record does not exist (404).
func NotFound(msg string) *Error { return newError(http.StatusNotFound, msg, nil) }

// Stale is returned when a conditional write lost against a concurrent update (409).
func Stale(msg string) *Error { return newError(http.StatusConflict, msg, nil) }

// Validation is returned when a request body fails validation (422).
func Validation(msg string, cause error) *Error {
	return newError(http.StatusUnprocessableEntity, msg, cause)
}

// Duplicate is returned when a unique field such as email is already taken (422).
func Duplicate(msg string) *Error { return newError(http.StatusUnprocessableEntity, msg, nil) }

// Internal wraps store, hashing and signing failures (500).
func Internal(msg string, cause error) *Error {
	return newError(http.StatusInternalServerError, msg, cause)
}

// StatusOf returns the status carried by err, or 500 for anything else.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}
