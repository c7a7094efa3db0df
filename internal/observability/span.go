package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	AttrLeagueID = attribute.Key("fpl.league_id")
	AttrEntryID  = attribute.Key("fpl.entry_id")
)

// StartChildSpan starts name under the span already in ctx. Without a
// valid parent it returns ctx and a no-op span, so background work outside
// a request or scheduled run produces no orphan traces.
func StartChildSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
