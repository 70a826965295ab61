// Package metrics provides Prometheus metrics collection for the gateway.
//
// The Collector owns a private Prometheus registry and all metric
// instances. The request pipeline records through the Collector; the
// scrape endpoint is served by Collector.Handler.
//
// # Metrics
//
// All metrics share the configured namespace (default "gateway"):
//
//	gateway_requests_total{model, status}
//	    Counter. Completed requests by model and HTTP status code.
//
//	gateway_request_duration_seconds{model}
//	    Histogram. End-to-end request duration. Buckets default to
//	    0.1s through 30s and can be overridden in configuration.
//
//	gateway_request_tokens_total{model, type}
//	    Counter. Prompt and completion token counts as reported in the
//	    backend's usage block. Only recorded when the backend response
//	    carries a recognizable usage object.
//
// # Cardinality
//
// The model label takes the value from the normalized request, which is
// client-controlled. Deployments that front untrusted clients should
// bound the set of accepted models upstream.
//
// # Disabled Metrics
//
// When metrics are disabled in configuration, recording methods are
// no-ops and the scrape endpoint is not registered. Request handling is
// unaffected either way.
package metrics
