package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
)

// Error-shaped bodies produced when a nominally successful backend call
// yields a payload that cannot be passed through. These ride inside a 200:
// a malformed-but-present response is a degradation, not a failure.
const (
	invalidFormatMessage = "Invalid response format from backend"
	emptyResponseMessage = "Empty response from backend"
)

// NormalizeResponse converts a classified backend result into a
// JSON-serializable mapping. The returned mapping is never nil and this
// function never fails: any anomaly degrades to an error-shaped mapping
// instead of propagating.
func NormalizeResponse(result *backend.Result) map[string]any {
	if result == nil {
		return map[string]any{"error": emptyResponseMessage}
	}

	var mapping map[string]any
	switch result.Kind {
	case backend.ResultStructured, backend.ResultFieldBag:
		mapping = result.Fields
	default:
		return map[string]any{"error": invalidFormatMessage}
	}

	if mapping == nil {
		return map[string]any{"error": emptyResponseMessage}
	}
	return mapping
}

// WriteJSONResponse writes a JSON response with the given status code.
// It sets the JSON content type before writing.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteClassifiedError writes a classified failure as a JSON response with
// the message under the conventional "detail" key.
func WriteClassifiedError(w http.ResponseWriter, cerr *ClassifiedError) error {
	return WriteJSONResponse(w, cerr.StatusCode, map[string]string{"detail": cerr.Message})
}
