// Package apperr defines the error taxonomy shared by all services.
// Services classify a failure exactly once, at the point of detection;
// the HTTP boundary renders the kind as a status code without regrading.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindUnauthenticated Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // optional cause, not exposed to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Unauthenticated is the single generic authentication failure. Missing
// token, bad signature, expired token, missing role or scope, missing
// session: all of them surface as this one message so a caller cannot
// probe which check failed.
func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "cannot authenticate request"}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
