package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestStartChildSpan_NoParent(t *testing.T) {
	ctx := context.Background()
	gotCtx, span := StartChildSpan(ctx, otel.Tracer("test"), "usecase.CollectionService.Run", AttrLeagueID.Int64(314))
	if gotCtx != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected non-recording span without a parent")
	}
}

func TestStartChildSpan_WithParent(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	gotCtx, span := StartChildSpan(ctx, otel.Tracer("test"), "usecase.CollectionService.Run")
	defer span.End()
	if gotCtx == ctx {
		t.Fatalf("expected a derived context for the child span")
	}
	if got := trace.SpanContextFromContext(gotCtx).TraceID(); got != traceID {
		t.Fatalf("expected child to stay in trace %s, got %s", traceID, got)
	}
}
