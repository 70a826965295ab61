// Package gateway implements the request/response normalization and
// forwarding pipeline.
//
// Every inbound method and path routes through the same pipeline:
//
//	inbound request → NormalizeRequest → Invoker.Invoke → NormalizeResponse → JSON response
//
// with Classify short-circuiting from normalization or invocation
// failures straight to a classified error response. The liveness check
// path bypasses the pipeline entirely.
//
// # Normalization
//
// NormalizeRequest applies field defaults (model, temperature,
// max_tokens), extracts the bearer credential, and validates that the
// messages sequence is present and non-empty. Construction is the
// validation gate: the backend invoker is never reached for a request
// that fails it. The body parse is lenient; malformed JSON behaves as an
// empty mapping rather than failing the request.
//
// NormalizeResponse guarantees a non-nil JSON-serializable mapping.
// Payloads that cannot be passed through degrade to an error-shaped
// mapping inside a 200 response — a malformed-but-present backend
// response is reported differently from an absent or failed call, which
// is a 5xx.
//
// # Error Classification
//
// Classify maps every failure to exactly one HTTP status and message:
// validation defects to 400, transport failures to 502, and everything
// else to 500. Failure responses carry the message under the "detail"
// key.
//
// The pipeline holds no cross-request state and requires no locking;
// each request is an independent unit of work.
package gateway
