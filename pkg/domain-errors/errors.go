// Package domainerrors defines the coded error vocabulary shared by services,
// stores, and transports. Services create or translate into these errors;
// transports map codes onto HTTP statuses without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. The set is closed: callers switch on
// codes, so adding one is an API change.
type Code string

const (
	// CodeInvalidRequest marks a computation request with missing or
	// contradictory inputs (absent trigger date, unresolvable duration,
	// counting mode the deadline type does not admit).
	CodeInvalidRequest Code = "invalid_request"

	// CodeUnknownDeadlineType marks a catalog miss for the requested
	// deadline type identifier.
	CodeUnknownDeadlineType Code = "unknown_deadline_type"

	// CodeDataUnavailable marks an unreachable or timed-out holiday,
	// catalog, or outage store. The engine fails closed on this code;
	// it never substitutes a guess for missing calendar data.
	CodeDataUnavailable Code = "data_unavailable"

	// CodeInvalidInput marks malformed values at a trust boundary
	// (unparseable enum, bad date format).
	CodeInvalidInput Code = "invalid_input"

	// CodeNotFound marks an absent entity other than a deadline type.
	CodeNotFound Code = "not_found"

	// CodeInternal marks unexpected failures. Messages for this code are
	// never surfaced to API callers.
	CodeInternal Code = "internal_error"
)

// Error is a domain error carrying a Code, a human-readable message, and an
// optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable through errors.Is/As for sentinel checks.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, falling back to CodeInternal when err is
// not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
