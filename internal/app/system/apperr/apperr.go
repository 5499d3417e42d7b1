// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy surfaced at the request
// boundary. Stores return their own sentinel errors (plus
// mongo.ErrNoDocuments); handlers translate those into one of these
// kinds before rendering a response. An error that reaches the boundary
// without a kind is treated as Unavailable and its details are logged,
// never echoed to the caller.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the caller.
type Kind string

const (
	Validation          Kind = "validation_error"
	NotFound            Kind = "not_found"
	Authorization       Kind = "authorization_error"
	Conflict            Kind = "conflict"
	DuplicateMembership Kind = "duplicate_membership"
	CapacityExceeded    Kind = "capacity_exceeded"
	Unavailable         Kind = "store_unavailable"
)

// Error carries a taxonomy kind, a caller-safe message, and an optional
// wrapped cause (for logs only).
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the taxonomy kind from err. Unclassified errors
// (including nil-kind wrapping) report Unavailable.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unavailable
}

// Message returns the caller-safe message for err, or a generic one for
// unclassified errors.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return "service unavailable"
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Authorization:
		return http.StatusForbidden
	case Conflict, DuplicateMembership:
		return http.StatusConflict
	case CapacityExceeded:
		return http.StatusConflict
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
