package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// DefaultBaseURL is the backend endpoint used when none is configured.
const DefaultBaseURL = "http://localhost:4000"

// completionsPath is the backend chat-completion endpoint path.
const completionsPath = "/v1/chat/completions"

// Message represents a single message in a conversation.
type Message struct {
	// Role identifies the message sender (system, user, assistant).
	Role string `json:"role"`

	// Content is the message text content.
	Content string `json:"content"`
}

// ChatRequest is the normalized chat-completion request forwarded to the
// backend. All fields are populated before invocation; defaulting and
// validation happen in the gateway package when the request is constructed.
type ChatRequest struct {
	// Model is the model identifier.
	Model string `json:"model"`

	// Messages is the conversation history. Never empty once a
	// ChatRequest has been constructed.
	Messages []Message `json:"messages"`

	// Temperature controls randomness.
	Temperature float64 `json:"temperature"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens"`

	// Credential is the bearer token forwarded to the backend.
	// Not serialized into the request body.
	Credential string `json:"-"`
}

// Invoker issues a single chat-completion call against the backend.
// It is the seam the gateway handler depends on; observers (tracing,
// test doubles) wrap it without changing request outcomes.
type Invoker interface {
	// Invoke performs one call and returns the classified result.
	// Failures are reported as *TransportError, *InvocationError, or
	// *NullResponseError; no retries are attempted.
	Invoke(ctx context.Context, req *ChatRequest) (*Result, error)
}

// Client is the HTTP implementation of Invoker.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client for the given base URL. An empty
// base URL falls back to DefaultBaseURL. The underlying HTTP client
// enforces no timeout of its own; cancellation is driven entirely by the
// request context.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Invoke sends one chat-completion request to the backend and classifies
// the outcome. The response body is read and closed on every path.
func (c *Client) Invoke(ctx context.Context, req *ChatRequest) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &InvocationError{Message: "failed to encode backend request", Cause: err}
	}

	url := c.baseURL + completionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &InvocationError{Message: "failed to build backend request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Credential != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Credential)
	}

	slog.DebugContext(ctx, "invoking backend",
		"url", url,
		"model", req.Model,
		"messages", len(req.Messages),
	)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &InvocationError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if isNullPayload(body) {
		return nil, &NullResponseError{}
	}

	result := Resolve(body)
	slog.DebugContext(ctx, "backend responded",
		"status", resp.StatusCode,
		"shape", result.Kind.String(),
	)
	return result, nil
}
