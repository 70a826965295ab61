package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
)

// tracedInvoker wraps a backend.Invoker with a client span around each
// invocation. It observes the call without changing its outcome: the
// wrapped invoker's result and error are returned unmodified.
type tracedInvoker struct {
	next   backend.Invoker
	tracer *Tracer
}

// Instrument wraps an invoker so each backend call is recorded as a
// "backend.invoke" span. When the tracer is nil or disabled the original
// invoker is returned unchanged.
func Instrument(next backend.Invoker, tracer *Tracer) backend.Invoker {
	if tracer == nil || !tracer.Enabled() {
		return next
	}
	return &tracedInvoker{next: next, tracer: tracer}
}

// Invoke implements backend.Invoker.
func (ti *tracedInvoker) Invoke(ctx context.Context, req *backend.ChatRequest) (*backend.Result, error) {
	ctx, span := ti.tracer.Start(ctx, "backend.invoke",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	SetRequestAttributes(span, "", req.Model, len(req.Messages))

	result, err := ti.next.Invoke(ctx, req)

	if err != nil {
		SetError(span, err)
		SetStatus(span, err)
		return result, err
	}

	span.SetAttributes(resultShapeAttr(result))
	if result.Kind == backend.ResultStructured && result.Completion.Usage != nil {
		usage := result.Completion.Usage
		SetTokenAttributes(span, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}
	SetStatus(span, nil)

	return result, nil
}
