package backend

import (
	"bytes"
	"encoding/json"
)

// ResultKind identifies which shape the backend response resolved to.
// The backend payload is classified exactly once, at the invoker boundary,
// instead of being probed opportunistically downstream.
type ResultKind int

const (
	// ResultStructured means the payload decoded into the typed
	// chat-completion shape.
	ResultStructured ResultKind = iota

	// ResultFieldBag means the payload was a JSON object but not a
	// recognizable completion; the raw field mapping is carried through.
	ResultFieldBag

	// ResultUnrecognized means the payload could not be converted to a
	// mapping at all (invalid JSON, or a non-object value).
	ResultUnrecognized
)

// String returns a human-readable name for the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultStructured:
		return "structured"
	case ResultFieldBag:
		return "field_bag"
	default:
		return "unrecognized"
	}
}

// Completion is the typed view of a backend chat-completion response.
type Completion struct {
	// ID is the unique response identifier.
	ID string `json:"id,omitempty"`

	// Object is the response object type (e.g., "chat.completion").
	Object string `json:"object,omitempty"`

	// Created is the Unix timestamp when the response was created.
	Created int64 `json:"created,omitempty"`

	// Model is the model that generated the response.
	Model string `json:"model,omitempty"`

	// Choices contains the generated completions.
	Choices []Choice `json:"choices,omitempty"`

	// Usage contains token consumption information.
	Usage *Usage `json:"usage,omitempty"`
}

// Choice is a single generated completion.
type Choice struct {
	// Index is the position of this choice in the response.
	Index int `json:"index"`

	// Message is the generated assistant message.
	Message Message `json:"message"`

	// FinishReason indicates why generation stopped.
	FinishReason string `json:"finish_reason,omitempty"`
}

// Usage tracks token consumption for a completion.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used.
	TotalTokens int `json:"total_tokens"`
}

// Result is the classified backend response: a tagged union over the three
// shapes a backend payload can take. Fields holds the generic mapping for
// both the structured and field-bag cases so the client-facing payload is
// a faithful passthrough; Completion additionally holds the typed view
// when the payload had completion shape.
type Result struct {
	// Kind identifies which branch of the union is populated.
	Kind ResultKind

	// Completion is the typed view. Set only when Kind is ResultStructured.
	Completion *Completion

	// Fields is the generic field mapping decoded from the payload.
	// Set when Kind is ResultStructured or ResultFieldBag.
	Fields map[string]any
}

// Resolve classifies raw backend payload bytes into a Result. It never
// fails: payloads that cannot be converted to a mapping resolve to
// ResultUnrecognized.
func Resolve(payload []byte) *Result {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return &Result{Kind: ResultUnrecognized}
	}

	var completion Completion
	if err := json.Unmarshal(payload, &completion); err == nil && looksStructured(&completion) {
		return &Result{
			Kind:       ResultStructured,
			Completion: &completion,
			Fields:     fields,
		}
	}

	return &Result{Kind: ResultFieldBag, Fields: fields}
}

// looksStructured reports whether a decoded payload carries enough of the
// completion shape to expose a typed view.
func looksStructured(c *Completion) bool {
	return c.ID != "" || c.Object != "" || c.Choices != nil
}

// isNullPayload reports whether the payload is empty or a bare JSON null.
func isNullPayload(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
