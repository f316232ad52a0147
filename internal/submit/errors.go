// Package submit sends extracted candidate profiles to the candidate service.
package submit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when the service rejects the session
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnknownRequest is returned by Dispatch for request kinds it does not handle
	ErrUnknownRequest = errors.New("unknown request kind")
	// ErrInvalidRequest is returned when a request fails validation before sending
	ErrInvalidRequest = errors.New("invalid request")
)

// APIError represents a non-success response from the candidate service.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("api error on %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("api error on %s: %s", e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
