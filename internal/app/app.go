package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-league-sync/external/fpl"
	"github.com/riskibarqy/fpl-league-sync/internal/config"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/league"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/standing"
	cacherepo "github.com/riskibarqy/fpl-league-sync/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-league-sync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fpl-league-sync/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-league-sync/internal/observability"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/cache"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/resilience"
	"github.com/riskibarqy/fpl-league-sync/internal/scheduler"
	"github.com/riskibarqy/fpl-league-sync/internal/usecase"
)

// Container holds the wired process. Scheduler is nil when disabled.
type Container struct {
	DB        *sqlx.DB
	Collector *usecase.CollectionService
	Runner    *usecase.CollectionRunner
	Scheduler *scheduler.Scheduler
	Metrics   *observability.Metrics
	Server    *http.Server

	readCache *cache.Store
	statuses  *cache.Store
	logger    *logging.Logger
}

// Build wires repositories, the upstream client and services on top of db.
func Build(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*Container, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	upstream := newUpstreamClient(cfg, logger, metrics)

	playerRepo := postgres.NewGlobalPlayerRepository(db)
	memberRepo := postgres.NewMembershipRepository(db)
	footballerRepo := postgres.NewFootballerRepository(db)

	var leagueRepo league.Repository = postgres.NewLeagueRepository(db)
	var gameweekRepo gameweek.Repository = postgres.NewGameweekRepository(db)
	var viewReader standing.ViewReader = postgres.NewStandingViewRepository(db)
	var readCache *cache.Store
	if cfg.CacheEnabled {
		readCache = cache.NewStore(cfg.CacheTTL)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, readCache)
		gameweekRepo = cacherepo.NewGameweekRepository(gameweekRepo, readCache)
		viewReader = cacherepo.NewStandingViewReader(viewReader, readCache)
		metrics.RegisterCache("reads", readCache)
	}

	collectionCfg := usecase.CollectionConfig{
		EntryPause: cfg.FPLEntryPause,
		Logger:     logger,
		OnCompleted: func(ctx context.Context, result usecase.CollectionResult) {
			cacherepo.InvalidateLeague(ctx, readCache, result.LeagueID)
		},
	}
	if metrics != nil {
		collectionCfg.Observer = metrics
	}
	collector := usecase.NewCollectionService(upstream, leagueRepo, playerRepo, memberRepo, footballerRepo, gameweekRepo, collectionCfg)

	statuses := cache.NewStore(cfg.CollectionRunTTL)
	metrics.RegisterCache("collection_runs", statuses)
	runner, err := usecase.NewCollectionRunner(collector, cfg.CollectorWorkers, nil, statuses, logger)
	if err != nil {
		return nil, err
	}

	selector := usecase.NewGameweekSelector(upstream, gameweekRepo, logger)
	standings := usecase.NewStandingsService(selector, viewReader, gameweekRepo, playerRepo, memberRepo, logger)
	captains := usecase.NewCaptainService(viewReader, gameweekRepo, logger)
	chips := usecase.NewChipService(gameweekRepo)

	handler := httpapi.NewHandler(httpapi.Dependencies{
		Health:    db,
		Gameweeks: usecase.NewGameweekService(upstream),
		Collector: collector,
		Runs:      runner,
		Standings: standings,
		Captains:  captains,
		Chips:     chips,
		Summaries: usecase.NewLeagueSummaryService(leagueRepo, standings, captains, chips),
		Players:   usecase.NewPlayerService(gameweekRepo, leagueRepo),
	}, logger)

	routerCfg := httpapi.RouterConfig{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}
	if metrics != nil {
		routerCfg.MetricsHandler = metrics.Handler()
		routerCfg.RouteObserver = metrics
	}

	c := &Container{
		DB:        db,
		Collector: collector,
		Runner:    runner,
		Metrics:   metrics,
		Server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewRouter(handler, routerCfg),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		readCache: readCache,
		statuses:  statuses,
		logger:    logger,
	}

	if cfg.SchedulerEnabled {
		c.Scheduler, err = scheduler.New(collector, scheduler.Config{
			Spec:        cfg.SchedulerCron,
			LeagueIDs:   cfg.SchedulerLeagueIDs,
			Concurrency: cfg.SchedulerConcurrency,
			Logger:      logger,
			Sweep:       c.sweepCaches,
		})
		if err != nil {
			_ = runner.Release(0)
			return nil, fmt.Errorf("create scheduler: %w", err)
		}
	}

	return c, nil
}

func newUpstreamClient(cfg config.Config, logger *logging.Logger, metrics *observability.Metrics) *fpl.Client {
	clientCfg := fpl.ClientConfig{
		BaseURL:           cfg.FPLBaseURL,
		MaxAttempts:       cfg.FPLMaxAttempts,
		RetryDelay:        cfg.FPLRetryDelay,
		Timeout:           cfg.FPLTimeout,
		LargeTimeout:      cfg.FPLLargeTimeout,
		MaxStandingsPages: cfg.FPLMaxStandingsPages,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	}
	if metrics != nil {
		clientCfg.Observer = metrics
	}

	client := fpl.NewClient(clientCfg)
	if metrics != nil {
		client.OnCircuitStateChange(metrics.CircuitStateRecorder("fpl"))
	}
	return client
}

func (c *Container) sweepCaches(ctx context.Context) int {
	removed := c.statuses.Sweep(ctx)
	if c.readCache != nil {
		removed += c.readCache.Sweep(ctx)
	}
	return removed
}

// Close drains background runs within timeout and closes the pool.
func (c *Container) Close(timeout time.Duration) error {
	var errs []error
	if c.Scheduler != nil {
		c.Scheduler.Stop(timeout)
	}
	if err := c.Runner.Release(timeout); err != nil {
		errs = append(errs, fmt.Errorf("release collection runner: %w", err))
	}
	if err := c.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
