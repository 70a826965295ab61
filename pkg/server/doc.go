// Package server provides the gateway HTTP server.
//
// # Routing
//
// Three routes are registered:
//
//	GET /health    Liveness check, bypasses the request pipeline
//	GET /metrics   Prometheus scrape endpoint (when metrics are enabled)
//	/              Catch-all request pipeline, every method and path
//
// The catch-all means clients may POST to any path; routing decisions
// belong to the backend. A non-GET request to /health or /metrics also
// falls through to the pipeline.
//
// # Middleware Chain
//
// Requests pass through the chain outermost first:
//
//	Recovery -> RequestID -> Logging -> CORS -> mux
//
// RequestID runs before Logging so every log line carries the ID.
//
// # Lifecycle
//
// Start blocks until the context is cancelled, SIGINT/SIGTERM arrives,
// or the listener fails. Shutdown drains in-flight requests within the
// configured shutdown timeout and is safe to call more than once.
package server
