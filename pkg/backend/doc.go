// Package backend implements the single-call invoker for the upstream
// inference service.
//
// The gateway forwards every normalized chat-completion request to one
// configured backend via Client.Invoke. Each request results in exactly one
// outbound HTTP call: no retries, no backoff, no core-enforced timeout.
// Cancellation is driven by the request context supplied by the transport
// layer.
//
// # Failure Taxonomy
//
// Invoke reports failures as typed errors so the gateway can classify them
// without string matching:
//
//   - *TransportError: the backend could not be reached (refused, DNS,
//     timeout). Classified as 502.
//   - *InvocationError: the backend was reached but the call failed
//     (non-2xx status, unreadable body). Classified as 500.
//   - *NullResponseError: the call succeeded but produced no result
//     (empty body or JSON null). Classified as 500.
//
// # Result Classification
//
// A successful payload is classified exactly once, at the invoker
// boundary, into a tagged union (Result): a typed completion
// (ResultStructured), a generic JSON object (ResultFieldBag), or an
// unconvertible value (ResultUnrecognized). Downstream code switches on
// Result.Kind instead of probing the payload's shape.
package backend
