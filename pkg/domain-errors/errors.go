// Package errors provides coded domain errors shared by all services.
//
// Services translate infrastructure sentinels (pkg/platform/sentinel) into
// coded errors at their boundary; the HTTP layer maps codes onto status
// codes. Messages are client-safe and may be surfaced verbatim, except for
// CodeInternal whose detail never crosses the boundary.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and branching.
type Code string

const (
	CodeValidation   Code = "validation_error"
	CodeInvalidInput Code = "invalid_input"
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"
)

// Error is a value type so tests can compare errors with errors.Is.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a coded domain error.
func New(code Code, message string) error {
	return Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable through errors.Unwrap for logging; only the message is
// client-visible.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return New(code, message)
	}
	return wrapped{coded: Error{Code: code, Message: message}, cause: err}
}

type wrapped struct {
	coded Error
	cause error
}

func (w wrapped) Error() string { return w.coded.Error() }

func (w wrapped) Unwrap() error { return w.cause }

// Is lets a wrapped error match its bare Error value.
func (w wrapped) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t == w.coded
}

// As surfaces the embedded Error value; Unwrap is reserved for the cause.
func (w wrapped) As(target any) bool {
	if t, ok := target.(*Error); ok {
		*t = w.coded
		return true
	}
	return false
}

// HasCode reports whether the nearest coded error in the chain carries the
// given code.
func HasCode(err error, code Code) bool {
	var de Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is a convenience alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// MessageOf extracts the client-safe message from a domain error. Non-domain
// errors yield an empty string so callers fall back to a generic message.
func MessageOf(err error) string {
	var de Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// CodeOf extracts the code from a domain error, defaulting to CodeInternal
// for unclassified errors.
func CodeOf(err error) Code {
	var de Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
