package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/config"
)

// RequestMetrics tracks metrics related to completion request processing.
//
// Metrics:
//   - gateway_requests_total: Total request count by model and status code
//   - gateway_request_duration_seconds: Request duration histogram by model
//   - gateway_request_tokens_total: Total tokens reported by the backend
type RequestMetrics struct {
	// Total request count
	requestsTotal *prometheus.CounterVec

	// Request duration histogram
	requestDuration *prometheus.HistogramVec

	// Token counts (prompt and completion)
	tokensTotal *prometheus.CounterVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of completion requests processed",
			},
			[]string{"model", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of completion requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"model"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "request_tokens_total",
				Help:      "Total number of tokens reported by the backend",
			},
			[]string{"model", "type"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.tokensTotal,
	)

	return rm
}

// RecordRequest records metrics for a completed request.
//
// Parameters:
//   - model: Model name from the normalized request ("" becomes "unknown")
//   - statusCode: HTTP status code returned to the client
//   - duration: Request duration
func (rm *RequestMetrics) RecordRequest(model string, statusCode int, duration time.Duration) {
	if model == "" {
		model = "unknown"
	}
	status := strconv.Itoa(statusCode)

	rm.requestsTotal.WithLabelValues(model, status).Inc()
	rm.requestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordTokens records token counts separately for prompt and completion.
func (rm *RequestMetrics) RecordTokens(model string, promptTokens, completionTokens int) {
	if model == "" {
		model = "unknown"
	}
	if promptTokens > 0 {
		rm.tokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		rm.tokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}
