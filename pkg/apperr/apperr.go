package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for callers; the HTTP layer maps codes to
// transport statuses, everything below it only deals in codes.
type Code string

const (
	CodeUnauthorized       Code = "unauthorized"
	CodePermissionDenied   Code = "permission_denied"
	CodeUsernameTaken      Code = "username_taken"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeInvalidParams      Code = "invalid_params"
	CodeInternal           Code = "internal"
)

// Error is the typed error returned by every repository and service
// function. No operation panics or swallows a failure.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

func Unauthorized(msg string) *Error       { return New(CodeUnauthorized, msg) }
func PermissionDenied(msg string) *Error   { return New(CodePermissionDenied, msg) }
func UsernameTaken(msg string) *Error      { return New(CodeUsernameTaken, msg) }
func InvalidCredentials(msg string) *Error { return New(CodeInvalidCredentials, msg) }
func InvalidParams(msg string) *Error      { return New(CodeInvalidParams, msg) }
func Internal(msg string, err error) *Error {
	return Wrap(CodeInternal, msg, err)
}

// CodeOf extracts the code from err, defaulting to CodeInternal so that
// unexpected errors never leak as client faults.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error to the status the interface layer should emit.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeUsernameTaken:
		return http.StatusConflict
	case CodeInvalidParams:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
