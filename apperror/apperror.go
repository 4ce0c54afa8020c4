// Package apperror defines the errors handlers hand to the error middleware.
// An *Error carries the HTTP status it should be rendered with; anything else
// is treated as an internal failure.
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Cause lets github.com/pkg/errors walk past the HTTP layer.
func (e *Error) Cause() error { return e.cause }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Unprocessable is the ValidationFailed kind: missing fields, empty carts and
// malformed query parameters.
func Unprocessable(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// WithCause attaches the underlying error for logging without changing what the
// client sees.
func (e *Error) WithCause(err error) *Error {
	return &Error{Status: e.Status, Message: e.Message, cause: err}
}

// As extracts an *Error from anywhere in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status err should be rendered with.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
