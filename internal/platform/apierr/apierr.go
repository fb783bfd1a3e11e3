package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation flags malformed or out-of-range input. Detected before any
// storage access.
func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "invalid_input", fmt.Errorf(format, args...))
}

// Conflict flags a uniqueness violation on a natural key.
func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, "conflict", fmt.Errorf(format, args...))
}

// NotFound flags a missing id or an out-of-range page.
func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf(format, args...))
}

// From extracts the *Error from an error chain, or wraps unknown errors
// as an internal failure.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return New(http.StatusInternalServerError, "internal", err)
}
