package usecase

import (
	"context"

	"github.com/riskibarqy/fpl-league-sync/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("fpl-league-sync/internal/usecase")

func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return observability.StartChildSpan(ctx, usecaseTracer, name, attrs...)
}

func leagueAttr(leagueID int64) attribute.KeyValue {
	return observability.AttrLeagueID.Int64(leagueID)
}

func entryAttr(entryID int64) attribute.KeyValue {
	return observability.AttrEntryID.Int64(entryID)
}
