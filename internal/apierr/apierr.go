// Package apierr defines the failure taxonomy shared by the engine and the
// RPC layer. Every failure the engine returns carries exactly one Kind.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind uint8

const (
	// KindInternal is an unexpected failure, usually storage.
	KindInternal Kind = iota
	// KindUnauthorized means the principal may not perform the action.
	KindUnauthorized
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindConflict means a name is already taken within its scope.
	KindConflict
	// KindValidation means the input is malformed or missing.
	KindValidation
	// KindUnauthenticated means the caller's credentials were rejected.
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// UnauthorizedMessage is the only text an Unauthorized failure carries.
const UnauthorizedMessage = "you are not authorised to perform this action"

// Error is a classified failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil && e.Msg != "" {
		return e.Msg + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized returns the generic denial. It deliberately carries no
// detail about the target.
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Msg: UnauthorizedMessage}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate name.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Validation reports malformed input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Unauthenticated reports rejected credentials.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

// Internal wraps an unexpected failure with the operation that hit it.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: op, Err: err}
}

// KindOf returns the kind of err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
