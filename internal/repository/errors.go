package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound       = errors.New("not found")
	ErrRejected       = errors.New("rejected by backend")
	ErrUnavailable    = errors.New("backend unavailable")
	ErrBadResponse    = errors.New("malformed backend response")
	ErrInternalServer = errors.New("backend internal error")
)

// APIError is a non-2xx answer from the backend. Message carries the
// backend's own {"error": ...} text when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unwrap maps the status onto the domain errors above so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 500:
		return ErrInternalServer
	default:
		return ErrRejected
	}
}

// ServerMessage returns the backend-supplied message, if any, found in err's chain.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
