package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
)

// Span attribute helpers.
//
// Standard attribute keys follow OpenTelemetry semantic conventions
// (http.*, rpc.*). Custom keys use the "gateway.*" namespace.

// Common attribute keys used throughout the gateway.
const (
	// Request attributes
	AttrRequestID = "gateway.request_id"
	AttrModel     = "gateway.model"
	AttrMessages  = "gateway.messages"
	AttrBackend   = "gateway.backend_url"

	// Result attributes
	AttrResultShape = "gateway.result_shape"

	// Token attributes
	AttrTokensPrompt     = "gateway.tokens.prompt"
	AttrTokensCompletion = "gateway.tokens.completion"
	AttrTokensTotal      = "gateway.tokens.total"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// SetRequestAttributes sets request-related attributes on a span.
func SetRequestAttributes(span trace.Span, requestID, model string, messages int) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrModel, model),
		attribute.Int(AttrMessages, messages),
	}
	if requestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, requestID))
	}
	span.SetAttributes(attrs...)
}

// SetTokenAttributes sets token count attributes on a span.
func SetTokenAttributes(span trace.Span, promptTokens, completionTokens, totalTokens int) {
	span.SetAttributes(
		attribute.Int(AttrTokensPrompt, promptTokens),
		attribute.Int(AttrTokensCompletion, completionTokens),
		attribute.Int(AttrTokensTotal, totalTokens),
	)
}

// resultShapeAttr returns the result classification as a span attribute.
func resultShapeAttr(result *backend.Result) attribute.KeyValue {
	return attribute.String(AttrResultShape, result.Kind.String())
}

// SetError marks the span as failed and records the error.
func SetError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorMessage, err.Error()),
	)
	span.RecordError(err)
}

// SetStatus sets the span status based on an error.
// If err is nil, status is set to OK, otherwise to Error.
func SetStatus(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
