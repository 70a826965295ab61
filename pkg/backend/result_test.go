package backend

import (
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantKind ResultKind
	}{
		{
			name:     "full completion is structured",
			payload:  `{"id":"chatcmpl-1","object":"chat.completion","created":1700000000,"model":"gpt-4","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`,
			wantKind: ResultStructured,
		},
		{
			name:     "id alone is enough for structured",
			payload:  `{"id":"x"}`,
			wantKind: ResultStructured,
		},
		{
			name:     "empty choices array is enough for structured",
			payload:  `{"choices":[]}`,
			wantKind: ResultStructured,
		},
		{
			name:     "object without completion markers is a field bag",
			payload:  `{"answer":42,"model":"gpt-4"}`,
			wantKind: ResultFieldBag,
		},
		{
			name:     "empty object is a field bag",
			payload:  `{}`,
			wantKind: ResultFieldBag,
		},
		{
			name:     "completion fields with wrong types fall back to field bag",
			payload:  `{"id":123,"choices":"nope"}`,
			wantKind: ResultFieldBag,
		},
		{
			name:     "JSON string is unrecognized",
			payload:  `"hello"`,
			wantKind: ResultUnrecognized,
		},
		{
			name:     "JSON array is unrecognized",
			payload:  `[1,2,3]`,
			wantKind: ResultUnrecognized,
		},
		{
			name:     "invalid JSON is unrecognized",
			payload:  `{broken`,
			wantKind: ResultUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Resolve([]byte(tt.payload))
			if result.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", result.Kind, tt.wantKind)
			}

			switch tt.wantKind {
			case ResultStructured:
				if result.Completion == nil {
					t.Error("structured result has nil Completion")
				}
				if result.Fields == nil {
					t.Error("structured result has nil Fields")
				}
			case ResultFieldBag:
				if result.Completion != nil {
					t.Error("field bag result has typed Completion")
				}
				if result.Fields == nil {
					t.Error("field bag result has nil Fields")
				}
			case ResultUnrecognized:
				if result.Completion != nil || result.Fields != nil {
					t.Error("unrecognized result carries data")
				}
			}
		})
	}
}

func TestResolveStructuredUsage(t *testing.T) {
	result := Resolve([]byte(`{"id":"x","usage":{"prompt_tokens":10,"completion_tokens":4,"total_tokens":14}}`))
	if result.Kind != ResultStructured {
		t.Fatalf("Kind = %v, want structured", result.Kind)
	}
	usage := result.Completion.Usage
	if usage == nil {
		t.Fatal("Usage is nil")
	}
	if usage.PromptTokens != 10 || usage.CompletionTokens != 4 || usage.TotalTokens != 14 {
		t.Errorf("usage = %+v", usage)
	}
}

func TestResultKindString(t *testing.T) {
	tests := []struct {
		kind ResultKind
		want string
	}{
		{ResultStructured, "structured"},
		{ResultFieldBag, "field_bag"},
		{ResultUnrecognized, "unrecognized"},
		{ResultKind(99), "unrecognized"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestIsNullPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"empty", "", true},
		{"whitespace", "  \n\t", true},
		{"null literal", "null", true},
		{"null with whitespace", " null \n", true},
		{"object", "{}", false},
		{"string null", `"null"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNullPayload([]byte(tt.payload)); got != tt.want {
				t.Errorf("isNullPayload(%q) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}
