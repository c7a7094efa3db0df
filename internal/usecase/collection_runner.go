package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/cache"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/id"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusNoData    = "no_data"
)

const (
	runStatusKeyPrefix = "collection_run:"
	runIDPrefix        = "run_"
)

// LeagueCollector is the pipeline entry point the runner drives.
type LeagueCollector interface {
	Run(ctx context.Context, leagueID int64) (CollectionResult, error)
}

type CollectionRun struct {
	RunID      string
	LeagueID   int64
	Status     string
	Result     *CollectionResult
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// CollectionRunner executes collections in the background on a bounded
// worker pool. Runs are detached from the submitting request and cannot be
// cancelled once accepted.
type CollectionRunner struct {
	collector LeagueCollector
	pool      *ants.Pool
	ids       id.Generator
	statuses  *cache.Store
	logger    *logging.Logger
}

func NewCollectionRunner(collector LeagueCollector, workers int, ids id.Generator, statuses *cache.Store, logger *logging.Logger) (*CollectionRunner, error) {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	if statuses == nil {
		statuses = cache.NewStore(24 * time.Hour)
	}
	if ids == nil {
		ids = id.NewTimeOrdered(runIDPrefix)
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create collection worker pool: %w", err)
	}

	return &CollectionRunner{
		collector: collector,
		pool:      pool,
		ids:       ids,
		statuses:  statuses,
		logger:    logger.Named("runner"),
	}, nil
}

// Submit queues a collection for leagueID and returns its run id.
func (r *CollectionRunner) Submit(ctx context.Context, leagueID int64) (CollectionRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionRunner.Submit", leagueAttr(leagueID))
	defer span.End()

	if leagueID <= 0 {
		return CollectionRun{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	runID, err := r.ids.NewID()
	if err != nil {
		return CollectionRun{}, fmt.Errorf("generate run id: %w", err)
	}

	run := CollectionRun{
		RunID:     runID,
		LeagueID:  leagueID,
		Status:    RunStatusPending,
		StartedAt: time.Now().UTC(),
	}
	r.store(ctx, run)

	detached := context.WithoutCancel(ctx)
	if err := r.pool.Submit(func() { r.execute(detached, run) }); err != nil {
		r.statuses.Delete(ctx, runStatusKeyPrefix+runID)
		return CollectionRun{}, fmt.Errorf("%w: collection workers busy: %v", ErrDependencyUnavailable, err)
	}

	r.logger.InfoContext(ctx, "collection run accepted", "run_id", runID, "league_id", leagueID)
	return run, nil
}

func (r *CollectionRunner) Status(ctx context.Context, runID string) (CollectionRun, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return CollectionRun{}, fmt.Errorf("%w: run id is required", ErrInvalidInput)
	}

	value, ok := r.statuses.Get(ctx, runStatusKeyPrefix+runID)
	if !ok {
		return CollectionRun{}, fmt.Errorf("%w: run=%s", ErrNotFound, runID)
	}
	run, ok := value.(CollectionRun)
	if !ok {
		return CollectionRun{}, fmt.Errorf("%w: run=%s", ErrNotFound, runID)
	}
	return run, nil
}

// Release waits for in-flight runs up to timeout, then frees the pool.
func (r *CollectionRunner) Release(timeout time.Duration) error {
	if timeout <= 0 {
		r.pool.Release()
		return nil
	}
	return r.pool.ReleaseTimeout(timeout)
}

func (r *CollectionRunner) execute(ctx context.Context, run CollectionRun) {
	defer func() {
		if recovered := recover(); recovered != nil {
			finished := time.Now().UTC()
			run.Status = RunStatusFailed
			run.Error = fmt.Sprintf("panic: %v", recovered)
			run.FinishedAt = &finished
			r.store(ctx, run)
			r.logger.ErrorContext(ctx, "collection run panicked", "run_id", run.RunID, "league_id", run.LeagueID, "panic", recovered)
		}
	}()

	run.Status = RunStatusRunning
	r.store(ctx, run)

	result, err := r.collector.Run(ctx, run.LeagueID)
	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.Result = &result
	switch {
	case err != nil:
		run.Status = RunStatusFailed
		run.Error = err.Error()
	case result.NoData:
		run.Status = RunStatusNoData
	default:
		run.Status = RunStatusCompleted
	}
	r.store(ctx, run)
}

func (r *CollectionRunner) store(ctx context.Context, run CollectionRun) {
	r.statuses.Set(ctx, runStatusKeyPrefix+run.RunID, run)
}
