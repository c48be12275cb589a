// Package domainerrors defines the coded error type used across service
// boundaries. Stores return sentinel errors (pkg/platform/sentinel); services
// translate them into coded errors here; transport maps codes onto HTTP
// status. Import with a short alias:
//
//	dErrors "vorsorge/pkg/domain-errors"
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers that need to branch on kind rather
// than message text.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeTimeout      Code = "timeout"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal"

	// CodeInvariantViolation marks states that should be impossible under the
	// documented invariants and require operator attention.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeMissingConsent is distinct from CodeForbidden so callers can render
	// a consent prompt instead of a generic denial.
	CodeMissingConsent Code = "missing_consent"
)

// Error carries a code, a caller-safe message, and an optional wrapped cause.
type Error struct {
	code    Code
	message string
	cause   error
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message to an underlying cause. The cause remains
// reachable via errors.Is/errors.As.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{code: code, message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Code returns the classification of the error.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the caller-safe message without the cause chain.
func (e *Error) Message() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes two coded errors equivalent under errors.Is when code and message
// match, so tests can assert against dErrors.New(code, msg) values.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == other.code && e.message == other.message
}

// HasCode reports whether err (or anything it wraps) is a coded error with
// the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code == code
	}
	return false
}

// Is is a readability alias for HasCode used at call sites that branch on a
// single code.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, or CodeInternal when err is not coded.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code
	}
	return CodeInternal
}
