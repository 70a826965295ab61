package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
)

// ClassifiedError pairs a failure with the HTTP status and message shown
// to the client. It is always fully populated.
type ClassifiedError struct {
	// StatusCode is the HTTP status code to respond with.
	StatusCode int

	// Message is the client-facing error message.
	Message string
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Classify maps a failure from the request normalizer or the backend
// invoker to the HTTP status code and message the client is shown.
//
// Classification is by the most specific failure kind observed:
//
//   - *ValidationError: 400, the validation message verbatim. Detected
//     before any network call is attempted.
//   - *backend.TransportError: 502, "Error connecting to backend server:"
//     plus the transport detail.
//   - everything else, including *backend.InvocationError and
//     *backend.NullResponseError: 500, "Proxy error:" plus the detail.
func Classify(err error) *ClassifiedError {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return &ClassifiedError{
			StatusCode: http.StatusBadRequest,
			Message:    valErr.Message,
		}
	}

	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) {
		return &ClassifiedError{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("Error connecting to backend server: %v", transportErr),
		}
	}

	return &ClassifiedError{
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("Proxy error: %v", err),
	}
}
