package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
)

const (
	// MaxRequestBodySize is the maximum allowed request body size (10MB).
	MaxRequestBodySize = 10 * 1024 * 1024

	// AuthorizationHeader is the HTTP header carrying the backend credential.
	AuthorizationHeader = "Authorization"

	// DefaultModel is used when the request omits the model field.
	DefaultModel = "claude-3-5-haiku-20241022"

	// DefaultTemperature is used when the request omits temperature.
	DefaultTemperature = 0.7

	// DefaultMaxTokens is used when the request omits max_tokens.
	DefaultMaxTokens = 20

	// bearerPrefix is stripped from the Authorization header value when
	// present. Exactly this literal, nothing looser.
	bearerPrefix = "Bearer "
)

// ValidationError represents a client input defect detected before any
// backend call is attempted. It is classified as a 400.
type ValidationError struct {
	// Field is the name of the invalid field.
	Field string

	// Message is the client-facing error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NormalizeRequest parses raw body bytes into a backend.ChatRequest,
// applying field defaults and validating the minimum required shape.
// Construction is the validation gate: a returned ChatRequest always has a
// non-empty messages sequence.
//
// The body parse is deliberately lenient: an empty body and a body that
// fails to parse as JSON both behave as an empty mapping, so they fall
// into the messages validation path rather than a parse-error path.
func NormalizeRequest(body []byte, credential string) (*backend.ChatRequest, error) {
	fields := parseBody(body)

	req := &backend.ChatRequest{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Credential:  credential,
	}

	if v, ok := fields["model"].(string); ok && v != "" {
		req.Model = v
	}
	if v, ok := fields["temperature"]; ok {
		if f, ok := asFloat(v); ok {
			req.Temperature = f
		}
	}
	if v, ok := fields["max_tokens"]; ok {
		if f, ok := asFloat(v); ok {
			req.MaxTokens = int(f)
		}
	}

	messages := parseMessages(fields["messages"])
	if len(messages) == 0 {
		return nil, &ValidationError{Field: "messages", Message: "Messages field is required"}
	}
	req.Messages = messages

	return req, nil
}

// ExtractCredential reads the Authorization header (case-insensitively)
// and returns the backend credential: the header value with a literal
// "Bearer " prefix stripped when present, the raw value otherwise, or the
// empty string when the header is absent.
func ExtractCredential(h http.Header) string {
	value := h.Get(AuthorizationHeader)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, bearerPrefix) {
		return strings.TrimPrefix(value, bearerPrefix)
	}
	return value
}

// parseBody decodes body bytes as a JSON object. Empty bodies and bodies
// that fail to parse both yield an empty mapping; malformed input is never
// a request failure on its own.
func parseBody(body []byte) map[string]any {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return map[string]any{}
	}
	return fields
}

// parseMessages converts the raw messages value into a typed sequence.
// Elements that are not objects are dropped; role and content default to
// empty strings when absent or not strings.
func parseMessages(v any) []backend.Message {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}

	messages := make([]backend.Message, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		var msg backend.Message
		if role, ok := entry["role"].(string); ok {
			msg.Role = role
		}
		if content, ok := entry["content"].(string); ok {
			msg.Content = content
		} else if content, ok := entry["content"]; ok && content != nil {
			// Non-string content (multimodal parts, numbers) is
			// flattened to its textual form.
			msg.Content = fmt.Sprintf("%v", content)
		}
		messages = append(messages, msg)
	}

	return messages
}

// asFloat converts a decoded JSON number to float64. encoding/json
// decodes numbers as float64; int and json.Number cover callers that
// construct field maps directly.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
