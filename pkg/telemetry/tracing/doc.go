// Package tracing provides distributed tracing for the gateway using
// OpenTelemetry.
//
// # Architecture
//
// The Tracer wraps the OpenTelemetry SDK with an OTLP gRPC exporter.
// When tracing is disabled in configuration, New returns a noop tracer;
// spans cost almost nothing and the request pipeline behaves identically
// to a build without tracing.
//
// # Instrumenting the Backend Call
//
// Instrument wraps a backend.Invoker so each backend call becomes a
// client span named "backend.invoke":
//
//	invoker := tracing.Instrument(backend.NewClient(baseURL), tracer)
//
// The wrapper is a pure observer. The wrapped invoker's result and error
// pass through unmodified, and a tracing failure never fails a request.
//
// # Span Attributes
//
// Custom attributes use the "gateway.*" namespace:
//
//	gateway.model           Model from the normalized request
//	gateway.messages        Number of messages forwarded
//	gateway.result_shape    Result classification (structured, field_bag, unrecognized)
//	gateway.tokens.*        Usage counts when the backend reports them
//
// Errors are recorded with span.RecordError and reflected in the span
// status.
//
// # Sampling
//
// The configured sample ratio is applied through a parent-based
// TraceIDRatioBased sampler: the decision is made once per trace and
// respected by all child spans.
//
// # Shutdown
//
// Tracer.Shutdown flushes pending spans. Call it before process exit:
//
//	defer tracer.Shutdown(context.Background())
package tracing
