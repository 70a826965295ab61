package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testRequest() *ChatRequest {
	return &ChatRequest{
		Model:       "gpt-4",
		Messages:    []Message{{Role: "user", Content: "hi"}},
		Temperature: 0.7,
		MaxTokens:   20,
	}
}

func TestClientInvokeSuccess(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.Invoke(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}

	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q, want /v1/chat/completions", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["model"] != "gpt-4" {
		t.Errorf("forwarded model = %v, want gpt-4", gotBody["model"])
	}
	if _, ok := gotBody["max_tokens"]; !ok {
		t.Error("forwarded body missing max_tokens")
	}

	if result.Kind != ResultStructured {
		t.Errorf("Kind = %v, want structured", result.Kind)
	}
}

func TestClientInvokeForwardsCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	req := testRequest()
	req.Credential = "sk-test"
	if _, err := client.Invoke(context.Background(), req); err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer sk-test")
	}
}

func TestClientInvokeOmitsEmptyCredential(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Invoke(context.Background(), testRequest()); err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}

	if hasAuth {
		t.Error("Authorization header sent for empty credential")
	}
}

func TestClientInvokeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL)
	_, err := client.Invoke(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Invoke() expected error for unreachable backend")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error type = %T, want *TransportError", err)
	}
	if transportErr.Unwrap() == nil {
		t.Error("TransportError has no cause")
	}
}

func TestClientInvokeNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Invoke(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Invoke() expected error for 401 response")
	}

	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("error type = %T, want *InvocationError", err)
	}
	if invErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", invErr.StatusCode)
	}
	if invErr.Message != "invalid api key" {
		t.Errorf("Message = %q, want trimmed backend body", invErr.Message)
	}
}

func TestClientInvokeNullResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"json null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL)
			_, err := client.Invoke(context.Background(), testRequest())

			var nullErr *NullResponseError
			if !errors.As(err, &nullErr) {
				t.Fatalf("error = %v (%T), want *NullResponseError", err, err)
			}
		})
	}
}

func TestClientInvokeContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	_, err := client.Invoke(ctx, testRequest())
	if err == nil {
		t.Fatal("Invoke() expected error for cancelled context")
	}
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error type = %T, want *TransportError", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	if got := NewClient("").BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
	if got := NewClient("http://example.com/").BaseURL(); got != "http://example.com" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", got)
	}
}
