package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Message is safe to show to API callers.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Invalid builds a validation error carrying a client-facing message.
func Invalid(message string) *Error {
	return NewError(ErrCodeInvalid, message)
}

// Common domain errors.
var (
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "Task not found")
	ErrUserNotFound     = NewError(ErrCodeNotFound, "User not found")
	ErrTitleRequired    = NewError(ErrCodeInvalid, "Title is required")
	ErrTitleEmpty       = NewError(ErrCodeInvalid, "Title cannot be empty")
	ErrNameEmailMissing = NewError(ErrCodeInvalid, "Name and email are required")
	ErrNameEmpty        = NewError(ErrCodeInvalid, "Name cannot be empty")
	ErrEmailEmpty       = NewError(ErrCodeInvalid, "Email cannot be empty")
	ErrInvalidPriority  = NewError(ErrCodeInvalid, "Priority must be one of low, medium, high")
	ErrCompletedNull    = NewError(ErrCodeInvalid, "Completed must be a boolean")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// PublicMessage returns the client-facing message of a domain error, or
// fallback when err carries none.
func PublicMessage(err error, fallback string) string {
	var dErr *Error
	if errors.As(err, &dErr) && dErr.Message != "" {
		return dErr.Message
	}
	return fallback
}
