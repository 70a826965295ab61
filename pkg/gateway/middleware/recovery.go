package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 500
// Internal Server Error response in the gateway's error format. It logs the
// panic with stack trace for debugging but does not expose internal details
// to clients.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// Get request ID for correlation
				requestID := GetRequestID(r.Context())

				// Capture stack trace
				stack := debug.Stack()

				// Log the panic with stack trace
				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				// Write error response in the same {"detail": ...} shape
				// the request pipeline uses.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				resp := map[string]string{
					"detail": fmt.Sprintf("Proxy error: %v", err),
				}
				if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
					slog.ErrorContext(r.Context(), "failed to encode panic response",
						"error", encErr,
						"request_id", requestID,
					)
				}
			}
		}()

		next.ServeHTTP(w, r)
	})
}
