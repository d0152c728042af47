package web

import (
	"github.com/pkg/errors"
)

// Error is a request-level failure that is safe to show to the client.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps err with the HTTP status it should be answered with.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status bool   `json:"status"`
}

// IsRequestError reports whether err carries a *Error and returns it.
func IsRequestError(err error) (*Error, bool) {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr, true
	}
	return nil, false
}
