package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/cache"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/resilience"
)

const metricsNamespace = "fpl_league_sync"

// Metrics owns the service's Prometheus collectors. It satisfies the
// collection observer and the upstream request observer.
type Metrics struct {
	registry *prometheus.Registry

	collectionRuns     *prometheus.CounterVec
	collectionDuration *prometheus.HistogramVec
	collectionEntries  *prometheus.CounterVec
	upstreamRequests   *prometheus.CounterVec
	upstreamDuration   *prometheus.HistogramVec
	circuitState       *prometheus.GaugeVec
	httpRequests       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		collectionRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "collection_runs_total",
			Help:      "League collection runs by outcome.",
		}, []string{"outcome"}),
		collectionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "collection_run_duration_seconds",
			Help:      "Wall time of one league collection run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"outcome"}),
		collectionEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "collection_entries_total",
			Help:      "Entries processed by collection runs.",
		}, []string{"result"}),
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_requests_total",
			Help:      "FPL API request attempts by endpoint and status.",
		}, []string{"endpoint", "status"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "FPL API request attempt latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		circuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_breaker_state",
			Help:      "1 for the breaker's current state, 0 otherwise.",
		}, []string{"dependency", "state"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "API requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

func (m *Metrics) ObserveCollection(outcome string, elapsed time.Duration, succeeded, failed int) {
	if m == nil {
		return
	}
	m.collectionRuns.WithLabelValues(outcome).Inc()
	m.collectionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	m.collectionEntries.WithLabelValues("succeeded").Add(float64(succeeded))
	m.collectionEntries.WithLabelValues("failed").Add(float64(failed))
}

func (m *Metrics) ObserveUpstream(endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, status).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// CircuitStateRecorder returns a breaker hook that keeps exactly one state
// label at 1 for dependency.
func (m *Metrics) CircuitStateRecorder(dependency string) func(resilience.CircuitState) {
	if m == nil {
		return func(resilience.CircuitState) {}
	}
	m.setCircuitState(dependency, resilience.CircuitStateClosed)
	return func(state resilience.CircuitState) {
		m.setCircuitState(dependency, state)
	}
}

func (m *Metrics) setCircuitState(dependency string, current resilience.CircuitState) {
	for _, state := range []resilience.CircuitState{
		resilience.CircuitStateClosed,
		resilience.CircuitStateOpen,
		resilience.CircuitStateHalfOpen,
	} {
		value := 0.0
		if state == current {
			value = 1
		}
		m.circuitState.WithLabelValues(dependency, string(state)).Set(value)
	}
}

func (m *Metrics) ObserveHTTP(route string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// CacheStatsSource is satisfied by *cache.Store.
type CacheStatsSource interface {
	Stats() cache.Stats
}

// RegisterCache exports hit, miss, load and size figures of src, read at
// scrape time and labelled cache=name.
func (m *Metrics) RegisterCache(name string, src CacheStatsSource) {
	if m == nil || src == nil {
		return
	}
	labels := prometheus.Labels{"cache": name}
	counter := func(metric, help string, read func(cache.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return float64(read(src.Stats())) })
	}

	m.registry.MustRegister(
		counter("cache_hits_total", "Cache lookups served from memory.", func(s cache.Stats) uint64 { return s.Hits }),
		counter("cache_misses_total", "Cache lookups that found nothing live.", func(s cache.Stats) uint64 { return s.Misses }),
		counter("cache_loads_total", "Backing-store loads made on a miss.", func(s cache.Stats) uint64 { return s.Loads }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "cache_entries",
			Help:        "Entries currently held, including expired ones not yet swept.",
			ConstLabels: labels,
		}, func() float64 { return float64(src.Stats().Entries) }),
	)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
