package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("livescore-aggregator/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startHandlerSpan opens a child of the request span. Requests skipped by
// RequestTracing carry no parent and get a no-op span.
func startHandlerSpan(ctx context.Context, handler string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, handlerSpanPrefix+handler,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}
