package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestLogger_WritesKeyValuesAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: LevelInfo, Fields: []any{"service", "fpl-league-sync"}}).Named("collector")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.Debug("dropped below level")
	logger.WarnContext(ctx, "entry skipped", "league_id", int64(314), "entry_id", int64(11))

	out := buf.String()
	if strings.Contains(out, "dropped below level") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	for _, want := range []string{`"component":"collector"`, `"service":"fpl-league-sync"`, `"league_id":314`, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`, `"level":"WARN"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}

func TestLogger_MalformedArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: LevelDebug})

	logger.Info("odd args", 42, "dangling")

	out := buf.String()
	if !strings.Contains(out, `"!BADKEY":42`) || !strings.Contains(out, `"!BADKEY":"dangling"`) {
		t.Fatalf("expected bad key markers in %s", out)
	}
}

func TestLogger_SyncOnceAcrossDerived(t *testing.T) {
	var buf bytes.Buffer
	root := New(Options{Output: &buf})
	child := root.With("league_id", int64(1)).Named("scheduler")

	if err := child.Sync(); err != nil {
		t.Fatalf("sync child: %v", err)
	}
	if err := root.Sync(); err != nil {
		t.Fatalf("second sync should be a no-op: %v", err)
	}
}
