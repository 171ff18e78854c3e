package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMsgNetworkFailure is reported when the transport fails without an error
// value to describe it.
const ErrMsgNetworkFailure = "a network error occurred"

// Kind classifies a failed call so callers can branch without matching
// messages.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindNetwork    Kind = "network"
	KindUnknown    Kind = "unknown"
)

// Error is the single error type returned by every Client call. Message is
// error.message of the service's error envelope, or "HTTP <status>" when the
// body carries none. Detail holds the text of short {"error":"..."} bodies.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or KindUnknown when err did not come from
// this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// DetailOf returns the short error text the service sent with err, if any.
func DetailOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether err is a 400 from the service.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindUnknown
	}
}

func statusError(status int, message, detail string) *Error {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &Error{Kind: kindForStatus(status), Status: status, Message: message, Detail: detail}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}
