package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation that requires an
	// authenticated session runs against an anonymous one.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionRestoreFailed marks a restore rejected by the backend.
	// It is handled silently: the caller falls back to the login form
	// without notifying the user.
	ErrSessionRestoreFailed = errors.New("session restore failed")
)

// RequestError is a failed API call: a non-2xx HTTP status with the message
// extracted from the response envelope, or a generic fallback when the body
// carried none.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// NewRequestError builds a RequestError, defaulting the message when the
// response body provided none.
func NewRequestError(status int, message string) *RequestError {
	if message == "" {
		message = "Request failed"
	}
	return &RequestError{Status: status, Message: message}
}

// ValidationError is a client-side precondition failure. It never reaches
// the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
