package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/gateway/middleware"
)

// RequestRecorder records completed request outcomes for metrics
// collection. Implementations must be safe for concurrent use. A nil
// recorder disables recording; its absence never changes request outcomes.
type RequestRecorder interface {
	RecordRequest(model string, statusCode int, duration time.Duration)
	RecordTokens(model string, promptTokens, completionTokens int)
}

// Handler is the single entry point for every inbound method and path.
// Each request flows through normalization, one backend invocation, and
// response normalization; failures short-circuit to a classified error
// response. The handler holds no cross-request state.
type Handler struct {
	invoker backend.Invoker
	metrics RequestRecorder
}

// NewHandler creates the gateway handler. The invoker performs the backend
// call (wrap it for tracing before passing it in); recorder may be nil.
func NewHandler(invoker backend.Invoker, recorder RequestRecorder) *Handler {
	return &Handler{invoker: invoker, metrics: recorder}
}

// ServeHTTP implements http.Handler. All methods and paths are handled
// identically; routing decisions belong to the backend.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	startTime := time.Now()

	setPermissiveCORS(w.Header())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err != nil {
		h.fail(w, r, "unknown", startTime, err)
		return
	}

	slog.DebugContext(ctx, "request received",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"body_bytes", len(body),
	)

	credential := ExtractCredential(r.Header)

	chatReq, err := NormalizeRequest(body, credential)
	if err != nil {
		h.fail(w, r, "unknown", startTime, err)
		return
	}

	slog.InfoContext(ctx, "forwarding chat completion",
		"request_id", requestID,
		"model", chatReq.Model,
		"messages", len(chatReq.Messages),
	)

	invokeStart := time.Now()
	result, err := h.invoker.Invoke(ctx, chatReq)
	invokeLatency := time.Since(invokeStart)

	if err != nil {
		slog.ErrorContext(ctx, "backend invocation failed",
			"request_id", requestID,
			"model", chatReq.Model,
			"error", err,
			"backend_latency_ms", invokeLatency.Milliseconds(),
		)
		h.fail(w, r, chatReq.Model, startTime, err)
		return
	}

	payload := NormalizeResponse(result)

	logAttrs := []any{
		"request_id", requestID,
		"model", chatReq.Model,
		"shape", result.Kind.String(),
		"backend_latency_ms", invokeLatency.Milliseconds(),
		"total_latency_ms", time.Since(startTime).Milliseconds(),
	}
	if result.Kind == backend.ResultStructured && result.Completion.Usage != nil {
		usage := result.Completion.Usage
		logAttrs = append(logAttrs,
			"prompt_tokens", usage.PromptTokens,
			"completion_tokens", usage.CompletionTokens,
			"total_tokens", usage.TotalTokens,
		)
		if h.metrics != nil {
			h.metrics.RecordTokens(chatReq.Model, usage.PromptTokens, usage.CompletionTokens)
		}
	}
	slog.InfoContext(ctx, "chat completion successful", logAttrs...)

	h.record(chatReq.Model, http.StatusOK, time.Since(startTime))

	if err := WriteJSONResponse(w, http.StatusOK, payload); err != nil {
		slog.ErrorContext(ctx, "failed to write response",
			"request_id", requestID,
			"error", err,
		)
	}
}

// fail classifies the error, records it, and writes the error response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, model string, startTime time.Time, err error) {
	ctx := r.Context()
	cerr := Classify(err)

	logLevel := slog.LevelWarn
	if cerr.StatusCode >= 500 {
		logLevel = slog.LevelError
	}
	slog.Log(ctx, logLevel, "request failed",
		"request_id", middleware.GetRequestID(ctx),
		"method", r.Method,
		"path", r.URL.Path,
		"status", cerr.StatusCode,
		"detail", cerr.Message,
	)

	h.record(model, cerr.StatusCode, time.Since(startTime))

	if err := WriteClassifiedError(w, cerr); err != nil {
		slog.ErrorContext(ctx, "failed to write error response", "error", err)
	}
}

func (h *Handler) record(model string, statusCode int, duration time.Duration) {
	if h.metrics != nil {
		h.metrics.RecordRequest(model, statusCode, duration)
	}
}

// setPermissiveCORS sets the wildcard cross-origin headers the client
// contract guarantees on pipeline responses.
func setPermissiveCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "*")
	h.Set("Access-Control-Allow-Headers", "*")
}

// HealthHandler handles the liveness check path. It bypasses the request
// pipeline entirely and reports healthy regardless of backend
// reachability.
type HealthHandler struct{}

// NewHealthHandler creates a new liveness check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"}); err != nil {
		slog.ErrorContext(r.Context(), "failed to write health response", "error", err)
	}
}
