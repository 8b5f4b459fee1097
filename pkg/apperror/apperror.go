package apperror

import (
	"errors"
	"net/http"
)

// Error is the typed failure every handler raises. A single middleware
// boundary converts it into the response envelope; handlers never format
// error bodies themselves.
type Error struct {
	Code    int    `json:"statusCode"`
	Message string `json:"message"`
	Errs    []any  `json:"errors,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func New(code int, message string, errs ...any) *Error {
	return &Error{Code: code, Message: message, Errs: errs}
}

func BadRequest(message string, errs ...any) *Error {
	return New(http.StatusBadRequest, message, errs...)
}

func Unauthorized(message string, errs ...any) *Error {
	return New(http.StatusUnauthorized, message, errs...)
}

func Forbidden(message string, errs ...any) *Error {
	return New(http.StatusForbidden, message, errs...)
}

func NotFound(message string, errs ...any) *Error {
	return New(http.StatusNotFound, message, errs...)
}

func Conflict(message string, errs ...any) *Error {
	return New(http.StatusConflict, message, errs...)
}

func Internal(message string, errs ...any) *Error {
	return New(http.StatusInternalServerError, message, errs...)
}

// From normalizes any error into an *Error. Unknown errors default to 500
// with a generic message so internals never leak to clients.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("internal server error")
}
