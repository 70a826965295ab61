// Package telemetry provides observability for the gateway.
//
// # Components
//
//   - logging: Structured logging via log/slog
//   - metrics: Prometheus metrics collection
//   - tracing: OpenTelemetry distributed tracing
//
// # Usage
//
//	// Configure the process-wide logger
//	logger, err := logging.Setup(cfg.Telemetry.Logging)
//
//	// Create the metrics collector
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// Initialize tracing (noop when disabled)
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(context.Background())
//
// Observability is strictly additive. Enabling or disabling any of the
// three components never changes the status code or body a client
// receives.
package telemetry
