package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backend could not be reached at all:
	// connection refused, timeout, DNS failure.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means a previously valid session was rejected.
	// The token store has already been cleared when this is returned.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a backend-signaled rejection (4xx) carrying the message the
// server attached to the response body. Expected business outcomes such
// as wrong credentials or a bad verification code surface as APIError,
// never as a transport failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// AsAPIError unwraps err into an *APIError if there is one in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
