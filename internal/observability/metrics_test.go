package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/platform/cache"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_ObserveCollection(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveCollection("completed", 3*time.Second, 4, 1)
	m.ObserveCollection("no_data", time.Second, 0, 0)

	body := scrape(t, m)
	assert.Contains(t, body, `fpl_league_sync_collection_runs_total{outcome="completed"} 1`)
	assert.Contains(t, body, `fpl_league_sync_collection_runs_total{outcome="no_data"} 1`)
	assert.Contains(t, body, `fpl_league_sync_collection_entries_total{result="succeeded"} 4`)
	assert.Contains(t, body, `fpl_league_sync_collection_entries_total{result="failed"} 1`)
}

func TestMetrics_ObserveUpstream(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveUpstream("entry-history", "200", 50*time.Millisecond)
	m.ObserveUpstream("entry-history", "503", 20*time.Millisecond)
	m.ObserveUpstream("entry-history", "503", 20*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `fpl_league_sync_upstream_requests_total{endpoint="entry-history",status="503"} 2`)
	assert.Contains(t, body, `fpl_league_sync_upstream_request_duration_seconds_count{endpoint="entry-history"} 3`)
}

func TestMetrics_CircuitStateRecorder(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	record := m.CircuitStateRecorder("fpl")
	assert.Contains(t, scrape(t, m), `fpl_league_sync_circuit_breaker_state{dependency="fpl",state="closed"} 1`)

	record(resilience.CircuitStateOpen)
	body := scrape(t, m)
	assert.Contains(t, body, `fpl_league_sync_circuit_breaker_state{dependency="fpl",state="closed"} 0`)
	assert.Contains(t, body, `fpl_league_sync_circuit_breaker_state{dependency="fpl",state="open"} 1`)
}

func TestMetrics_ObserveHTTP(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveHTTP("GET /v1/leagues/{leagueID}/standings", http.StatusOK)

	assert.Contains(t, scrape(t, m), `fpl_league_sync_http_requests_total{code="200",route="GET /v1/leagues/{leagueID}/standings"} 1`)
}

func TestMetrics_RegisterCache(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	store := cache.NewStore(time.Minute)
	m.RegisterCache("reads", store)

	ctx := context.Background()
	store.Set(ctx, "league:314:chips", 1)
	store.Get(ctx, "league:314:chips")
	store.Get(ctx, "league:314:captains")

	body := scrape(t, m)
	assert.Contains(t, body, `fpl_league_sync_cache_hits_total{cache="reads"} 1`)
	assert.Contains(t, body, `fpl_league_sync_cache_misses_total{cache="reads"} 1`)
	assert.Contains(t, body, `fpl_league_sync_cache_entries{cache="reads"} 1`)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveCollection("failed", time.Second, 0, 0)
	m.ObserveUpstream("bootstrap-static", "timeout", time.Second)
	m.ObserveHTTP("GET /healthz", http.StatusOK)
	m.CircuitStateRecorder("fpl")(resilience.CircuitStateOpen)
	m.RegisterCache("reads", cache.NewStore(0))
}
