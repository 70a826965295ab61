package backend

import "fmt"

// TransportError represents a network-layer failure reaching the backend:
// connection refused, DNS resolution failure, or a timeout before a
// response was received. The backend is assumed transiently unreachable;
// the gateway surfaces this as a 502 and does not retry.
type TransportError struct {
	// URL is the backend endpoint the request was sent to.
	URL string

	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// InvocationError represents an abnormal backend response: the backend was
// reachable but the call failed (non-2xx status, unreadable payload, or a
// request that could not be constructed). Surfaced as a 500.
type InvocationError struct {
	// StatusCode is the HTTP status returned by the backend
	// (0 if the failure occurred before a status was received).
	StatusCode int

	// Message describes the failure.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// NullResponseError represents a nominally successful call that yielded no
// result at all: an empty body or a JSON null. Surfaced as a 500.
type NullResponseError struct{}

// Error implements the error interface.
func (e *NullResponseError) Error() string {
	return "backend returned null response"
}
