package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("predipto/internal/usecase")

// startUsecaseSpan only opens child spans. Calls outside a traced request
// (CLI, cron) get the non-recording span already in ctx.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func matchAttr(matchID int64) attribute.KeyValue {
	return attribute.Int64("predipto.match_id", matchID)
}

func userAttr(userID string) attribute.KeyValue {
	return attribute.String("predipto.user_id", userID)
}
