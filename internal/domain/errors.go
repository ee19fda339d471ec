package domain

import "errors"

// ErrorCode classifies a protocol-visible failure.
type ErrorCode string

const (
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeStoreFailure    ErrorCode = "STORE_FAILURE"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
)

// Error is a failure reported to the requesting connection as an error event.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

func Unauthenticated(msg string) *Error { return &Error{Code: CodeUnauthenticated, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Code: CodeForbidden, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Code: CodeConflict, Message: msg} }
func StoreFailure(msg string) *Error    { return &Error{Code: CodeStoreFailure, Message: msg} }
func BadRequest(msg string) *Error      { return &Error{Code: CodeBadRequest, Message: msg} }

// CodeOf extracts the code from err, or empty if err is not a domain error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
