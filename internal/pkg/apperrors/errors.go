package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP mapping and caller handling.
type Kind int

const (
	// KindInternal is an unexpected persistence failure. The zero value,
	// so unwrapped errors map to it.
	KindInternal Kind = iota
	// KindValidation means caller-supplied data violates a rule.
	KindValidation
	// KindNotFound means a referenced Listing or Application does not exist.
	KindNotFound
	// KindConflict means a duplicate application from the same sitter.
	KindConflict
)

// Error is a typed service error with a stable, human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validationf builds a validation error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a conflict error.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internalf builds an internal error.
func Internalf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsTyped reports whether err is (or wraps) an *Error. Services use it to
// re-raise business errors untouched and wrap everything else.
func IsTyped(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return 400
	case KindNotFound:
		return 404
	default:
		return 500
	}
}
