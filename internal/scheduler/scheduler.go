package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
	"github.com/riskibarqy/fpl-league-sync/internal/usecase"
	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc/pool"
)

const sweepSpec = "@every 1h"

type Config struct {
	// Spec is a standard five-field cron expression.
	Spec        string
	LeagueIDs   []int64
	Concurrency int
	Logger      *logging.Logger
	// Sweep, when set, runs hourly to drop expired collection run statuses.
	Sweep func(ctx context.Context) int
}

// Scheduler refreshes a fixed set of leagues on a cron schedule. A tick
// that fires while the previous refresh is still running is skipped.
type Scheduler struct {
	collector   usecase.LeagueCollector
	cron        *cron.Cron
	spec        string
	leagueIDs   []int64
	concurrency int
	sweep       func(ctx context.Context) int
	logger      *logging.Logger

	mu      sync.Mutex
	baseCtx context.Context
	started bool
}

func New(collector usecase.LeagueCollector, cfg Config) (*Scheduler, error) {
	if collector == nil {
		return nil, fmt.Errorf("scheduler collector is required")
	}
	if len(cfg.LeagueIDs) == 0 {
		return nil, fmt.Errorf("scheduler needs at least one league id")
	}
	if _, err := cron.ParseStandard(cfg.Spec); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", cfg.Spec, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Scheduler{
		collector:   collector,
		cron:        cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:        cfg.Spec,
		leagueIDs:   append([]int64(nil), cfg.LeagueIDs...),
		concurrency: concurrency,
		sweep:       cfg.Sweep,
		logger:      logger.Named("scheduler"),
		baseCtx:     context.Background(),
	}, nil
}

// Start registers the jobs and starts the cron loop. Once ctx is done no
// new refresh starts; a refresh already running is left to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	s.baseCtx = ctx
	if _, err := s.cron.AddFunc(s.spec, s.tick); err != nil {
		return fmt.Errorf("schedule league refresh: %w", err)
	}
	if s.sweep != nil {
		if _, err := s.cron.AddFunc(sweepSpec, s.sweepTick); err != nil {
			return fmt.Errorf("schedule run status sweep: %w", err)
		}
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("scheduler started", "spec", s.spec, "leagues", len(s.leagueIDs), "concurrency", s.concurrency)
	return nil
}

// Stop halts new ticks and waits up to timeout for a running refresh.
func (s *Scheduler) Stop(timeout time.Duration) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(timeout):
		s.logger.Warn("scheduler stop timed out waiting for running refresh", "timeout", timeout)
	}
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if ctx.Err() != nil {
		s.logger.Info("scheduler shutting down, refresh skipped")
		return
	}
	if err := s.RefreshAll(ctx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled refresh finished with errors", "error", err)
	}
}

func (s *Scheduler) sweepTick() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if removed := s.sweep(ctx); removed > 0 {
		s.logger.InfoContext(ctx, "expired collection runs swept", "removed", removed)
	}
}

// RefreshAll collects every configured league, at most Concurrency at a
// time. One league failing does not stop the others. Runs are detached from
// ctx cancellation so a shutdown cannot cut a league run short.
func (s *Scheduler) RefreshAll(ctx context.Context) error {
	startedAt := time.Now()
	ctx = context.WithoutCancel(ctx)
	p := pool.New().WithMaxGoroutines(s.concurrency).WithContext(ctx)

	for _, leagueID := range s.leagueIDs {
		p.Go(func(ctx context.Context) error {
			result, err := s.collector.Run(ctx, leagueID)
			if err != nil {
				return fmt.Errorf("league %d: %w", leagueID, err)
			}
			s.logger.InfoContext(ctx, "scheduled league refresh done",
				"league_id", leagueID,
				"outcome", result.Outcome(),
				"succeeded", result.Succeeded,
				"failed", result.Failed,
			)
			return nil
		})
	}

	err := p.Wait()
	s.logger.InfoContext(ctx, "scheduled refresh complete",
		"leagues", len(s.leagueIDs),
		"elapsed", time.Since(startedAt),
		"failed_leagues", countJoined(err),
	)
	return err
}

func countJoined(err error) int {
	if err == nil {
		return 0
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return len(joined.Unwrap())
	}
	return 1
}
