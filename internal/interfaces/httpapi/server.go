package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

type RouterConfig struct {
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	InternalJobToken   string
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
	RouteObserver  RouteObserver
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerPublicRoutes(mux, handler)
	registerCollectionRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(
		RequestLogging(logger,
			CORS(cfg.CORSAllowedOrigins,
				recoverPanic(logger,
					RouteMetrics(cfg.RouteObserver, mux)))))
}
