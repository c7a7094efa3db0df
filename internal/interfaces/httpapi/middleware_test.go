package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "valid token", configured: "secret", provided: "secret", wantStatus: http.StatusOK},
		{name: "missing token", configured: "secret", provided: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", provided: "nope", wantStatus: http.StatusUnauthorized},
		{name: "not configured", configured: " ", provided: "secret", wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireInternalJobToken(tt.configured, okHandler())
			req := httptest.NewRequest(http.MethodPost, "/v1/leagues/314/collections", nil)
			if tt.provided != "" {
				req.Header.Set(internalJobTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

type recordedRoute struct {
	route string
	code  int
}

type fakeRouteObserver struct {
	mu     sync.Mutex
	routes []recordedRoute
}

func (f *fakeRouteObserver) ObserveHTTP(route string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, recordedRoute{route: route, code: code})
}

func TestRouteMetrics_RecordsMatchedPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/leagues/{leagueID}/chips", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	observer := &fakeRouteObserver{}
	handler := RouteMetrics(observer, mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/leagues/314/chips", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(observer.routes) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observer.routes))
	}
	if got := observer.routes[0]; got.route != "GET /v1/leagues/{leagueID}/chips" || got.code != http.StatusTeapot {
		t.Fatalf("unexpected first observation: %+v", got)
	}
	if got := observer.routes[1]; got.route != "unmatched" || got.code != http.StatusNotFound {
		t.Fatalf("unexpected second observation: %+v", got)
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/314/chips", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestRecoverPanic_ReraisesAbortHandler(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/leagues/314/chips", nil))
	t.Fatalf("expected panic to propagate")
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		path      string
		status    int
		wantLevel string
	}{
		{path: "/v1/leagues/314/chips", status: http.StatusOK, wantLevel: "INFO"},
		{path: "/v1/leagues/314/chips", status: http.StatusNotFound, wantLevel: "WARN"},
		{path: "/v1/leagues/314/chips", status: http.StatusBadGateway, wantLevel: "ERROR"},
		{path: "/healthz", status: http.StatusOK, wantLevel: "DEBUG"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := logging.New(logging.Options{Level: logging.LevelDebug, Output: &buf})
		handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte("{}"))
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

		line := buf.String()
		if !strings.Contains(line, `"level":"`+tt.wantLevel+`"`) {
			t.Fatalf("%s %d: expected level %s in %s", tt.path, tt.status, tt.wantLevel, line)
		}
		if !strings.Contains(line, `"bytes":2`) || !strings.Contains(line, `"component":"http"`) {
			t.Fatalf("expected bytes and component fields in %s", line)
		}
	}
}

func TestStatusWriter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}
	if sw.Status() != http.StatusOK {
		t.Fatalf("expected implicit 200, got %d", sw.Status())
	}

	sw.WriteHeader(http.StatusAccepted)
	sw.WriteHeader(http.StatusInternalServerError)
	if sw.Status() != http.StatusAccepted {
		t.Fatalf("expected first status to stick, got %d", sw.Status())
	}
}

func TestShouldTraceRequest(t *testing.T) {
	cases := map[string]bool{
		"/healthz":                  false,
		" /V1/HEALTH ":              false,
		"/metrics":                  false,
		"/v1/leagues/314/standings": true,
		"/v1/players/42/history":    true,
		"/":                         true,
	}
	for path, want := range cases {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", path, got, want)
		}
	}
}
