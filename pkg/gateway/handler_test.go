package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
)

// fakeInvoker is a scripted backend for handler tests. It counts calls
// and records the last request it saw.
type fakeInvoker struct {
	result  *backend.Result
	err     error
	calls   int
	lastReq *backend.ChatRequest
}

func (f *fakeInvoker) Invoke(ctx context.Context, req *backend.ChatRequest) (*backend.Result, error) {
	f.calls++
	f.lastReq = req
	return f.result, f.err
}

// fakeRecorder captures metric recordings for assertions.
type fakeRecorder struct {
	model      string
	statusCode int
	tokens     int
}

func (f *fakeRecorder) RecordRequest(model string, statusCode int, duration time.Duration) {
	f.model = model
	f.statusCode = statusCode
}

func (f *fakeRecorder) RecordTokens(model string, promptTokens, completionTokens int) {
	f.tokens = promptTokens + completionTokens
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHandlerSuccess(t *testing.T) {
	invoker := &fakeInvoker{
		result: backend.Resolve([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`)),
	}
	recorder := &fakeRecorder{}
	handler := NewHandler(invoker, recorder)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
		strings.NewReader(`{"model":"gpt-4","messages":[{"role":"user","content":"hi"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if invoker.calls != 1 {
		t.Errorf("invoker calls = %d, want 1", invoker.calls)
	}

	body := decodeBody(t, rec)
	if body["id"] != "chatcmpl-1" {
		t.Errorf("id = %v, want chatcmpl-1", body["id"])
	}

	if recorder.model != "gpt-4" || recorder.statusCode != 200 {
		t.Errorf("recorded %q/%d, want gpt-4/200", recorder.model, recorder.statusCode)
	}
	if recorder.tokens != 5 {
		t.Errorf("recorded tokens = %d, want 5", recorder.tokens)
	}
}

func TestHandlerValidationFailureSkipsBackend(t *testing.T) {
	invoker := &fakeInvoker{}
	handler := NewHandler(invoker, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
		strings.NewReader(`{"model":"gpt-4"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if invoker.calls != 0 {
		t.Errorf("invoker calls = %d, want 0 for rejected requests", invoker.calls)
	}

	body := decodeBody(t, rec)
	if body["detail"] != "Messages field is required" {
		t.Errorf("detail = %v, want %q", body["detail"], "Messages field is required")
	}
}

func TestHandlerTransportFailure(t *testing.T) {
	invoker := &fakeInvoker{
		err: &backend.TransportError{URL: "http://localhost:4000/v1/chat/completions", Cause: errors.New("connection refused")},
	}
	handler := NewHandler(invoker, nil)

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	body := decodeBody(t, rec)
	detail, _ := body["detail"].(string)
	if !strings.HasPrefix(detail, "Error connecting to backend server: ") {
		t.Errorf("detail = %q, want connection error prefix", detail)
	}
}

func TestHandlerNullResponse(t *testing.T) {
	invoker := &fakeInvoker{err: &backend.NullResponseError{}}
	handler := NewHandler(invoker, nil)

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["detail"] != "Proxy error: backend returned null response" {
		t.Errorf("detail = %v", body["detail"])
	}
}

func TestHandlerUnrecognizedPayloadIs200(t *testing.T) {
	invoker := &fakeInvoker{result: backend.Resolve([]byte(`not json`))}
	handler := NewHandler(invoker, nil)

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// A malformed-but-present backend payload is a degradation inside a
	// 200, not a failure.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Invalid response format from backend" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestHandlerSetsCORSHeaders(t *testing.T) {
	invoker := &fakeInvoker{result: backend.Resolve([]byte(`{"ok":true}`))}
	handler := NewHandler(invoker, nil)

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	for _, header := range []string{
		"Access-Control-Allow-Origin",
		"Access-Control-Allow-Methods",
		"Access-Control-Allow-Headers",
	} {
		if got := rec.Header().Get(header); got != "*" {
			t.Errorf("%s = %q, want *", header, got)
		}
	}
}

func TestHandlerForwardsCredential(t *testing.T) {
	invoker := &fakeInvoker{result: backend.Resolve([]byte(`{"ok":true}`))}
	handler := NewHandler(invoker, nil)

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Authorization", "Bearer sk-test")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if invoker.lastReq == nil {
		t.Fatal("backend never invoked")
	}
	if invoker.lastReq.Credential != "sk-test" {
		t.Errorf("Credential = %q, want sk-test", invoker.lastReq.Credential)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}
