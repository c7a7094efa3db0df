package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/fpl-league-sync/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var apiTracer = otel.Tracer("fpl-league-sync/internal/interfaces/httpapi")

const handlerSpanPrefix = "httpapi.Handler."

// startSpan opens a child of the request span for handler methods only;
// middleware and helpers keep writing to the request span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, noop.Span{}
	}
	return observability.StartChildSpan(ctx, apiTracer, name)
}
