// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// This package implements middleware functions that handle common functionality
// across all HTTP requests including request ID generation, logging, CORS,
// and panic recovery.
//
// # Middleware Chain
//
// Middleware functions are chained in a specific order:
//
//	handler = Recovery(RequestID(Logging(CORS(handler))))
//
// Order (innermost to outermost):
//  1. CORS: Add Cross-Origin Resource Sharing headers, answer preflight
//  2. Logging: Log request/response details
//  3. RequestID: Generate and propagate request ID before logging runs
//  4. Recovery: Recover from panics
//
// # Request ID
//
// RequestIDMiddleware generates a unique ID for each request using UUID v4:
//
//	X-Request-ID: 550e8400-e29b-41d4-a716-446655440000
//
// The request ID is:
//   - Added to context for handler access
//   - Included in response headers
//   - Logged with all request/response logs
//
// # Logging
//
// LoggingMiddleware uses structured logging (log/slog) to record request
// details: method, path, status code, latency, request ID, remote address.
// The completion log level follows the status class: INFO for 2xx/3xx,
// WARN for 4xx, ERROR for 5xx.
//
// # CORS
//
// CORSMiddleware adds Cross-Origin Resource Sharing headers. The default
// configuration allows all origins, methods, and headers:
//
//	Access-Control-Allow-Origin: *
//	Access-Control-Allow-Methods: *
//	Access-Control-Allow-Headers: *
//
// Preflight OPTIONS requests are answered with 204 No Content and never
// reach the request pipeline.
//
// # Recovery
//
// RecoveryMiddleware catches panics in handlers and converts them to HTTP
// 500 errors in the gateway's {"detail": ...} error shape. The panic stack
// trace is logged but not exposed to clients.
//
// # Context Values
//
// Middleware stores values in context for handler access:
//
//	const (
//	    RequestIDKey contextKey = "request_id"
//	    StartTimeKey contextKey = "start_time"
//	)
//
// Handlers retrieve values through the typed helpers GetRequestID and
// GetStartTime.
//
// # Thread Safety
//
// All middleware functions are thread-safe and can be called concurrently
// from multiple goroutines.
package middleware
