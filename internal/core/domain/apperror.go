package domain

import (
	"errors"
	"fmt"
	"strings"
)

// AppError is the single normalized error type allowed to cross a service
// boundary. The kind is decided at the throw site via the constructors below,
// so callers never dispatch on concrete driver or transport error types.
type AppError struct {
	Code    int    `json:"code"`    // HTTP-style status
	Context string `json:"context"` // originating operation label
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s (code %d)", e.Context, e.Message, e.Code)
}

// NewClientError returns a caller-correctable AppError (400).
func NewClientError(context, message string) *AppError {
	return &AppError{Code: 400, Context: context, Message: message}
}

// NewNotFoundError returns an AppError for a missing local record (404).
func NewNotFoundError(context, message string) *AppError {
	return &AppError{Code: 404, Context: context, Message: message}
}

// NewInternalError returns an AppError for an unexpected failure (500).
func NewInternalError(context, message string) *AppError {
	return &AppError{Code: 500, Context: context, Message: message}
}

// AsAppError unwraps err into an *AppError when it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// RemoteError is the typed failure produced by the external profile client
// when the remote service answers with its error payload
// {error: {status, code, message}}.
type RemoteError struct {
	Status  int
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("alma: %s (status %d, code %d)", e.Message, e.Status, e.Code)
}

// DuplicateFieldError reports a unique-constraint violation on local
// persistence, naming the offending field(s).
type DuplicateFieldError struct {
	Fields []string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("[ '%s' ] already in use", strings.Join(e.Fields, "', '"))
}
