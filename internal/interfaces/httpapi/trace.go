package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("predipto/internal/interfaces/httpapi")

// tracedSpanPrefixes are the spans worth a child of the otelhttp server span:
// handlers, plus the auth middlewares that call the identity provider.
var tracedSpanPrefixes = []string{"httpapi.Handler.", "httpapi.Require"}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	for _, prefix := range tracedSpanPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
