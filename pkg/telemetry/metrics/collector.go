package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/config"
)

// Collector owns the Prometheus registry and all gateway metrics. It
// provides the recording interface used by the request pipeline and the
// HTTP handler for the scrape endpoint.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Request metrics
	requestMetrics *RequestMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "gateway",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.requestMetrics = NewRequestMetrics(cfg, registry)

	return c
}

// RecordRequest records metrics for a completed request. It is a no-op
// when metrics are disabled.
func (c *Collector) RecordRequest(model string, statusCode int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordRequest(model, statusCode, duration)
}

// RecordTokens records prompt and completion token counts from a backend
// response. It is a no-op when metrics are disabled.
func (c *Collector) RecordTokens(model string, promptTokens, completionTokens int) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordTokens(model, promptTokens, completionTokens)
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
