package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/platform/cache"
)

type stubCollector struct {
	result CollectionResult
	err    error
	seen   chan context.Context
}

func (s *stubCollector) Run(ctx context.Context, leagueID int64) (CollectionResult, error) {
	if s.seen != nil {
		s.seen <- ctx
	}
	out := s.result
	out.LeagueID = leagueID
	return out, s.err
}

type sequenceIDs struct{ next int }

func (s *sequenceIDs) NewID() (string, error) {
	s.next++
	return "run-" + string(rune('0'+s.next)), nil
}

func waitForStatus(t *testing.T, runner *CollectionRunner, runID string, want string) CollectionRun {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		run, err := runner.Status(context.Background(), runID)
		if err == nil && run.Status == want {
			return run
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("run %s never reached status %s", runID, want)
	return CollectionRun{}
}

func TestCollectionRunner_SubmitCompletes(t *testing.T) {
	t.Parallel()

	collector := &stubCollector{result: CollectionResult{Records: 3, Succeeded: 3}, seen: make(chan context.Context, 1)}
	runner, err := NewCollectionRunner(collector, 2, &sequenceIDs{}, cache.NewStore(time.Minute), nil)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	defer func() { _ = runner.Release(time.Second) }()

	ctx, cancel := context.WithCancel(context.Background())
	run, err := runner.Submit(ctx, 314)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	cancel()

	if run.RunID != "run-1" {
		t.Fatalf("unexpected run id: %s", run.RunID)
	}

	runCtx := <-collector.seen
	if runCtx.Err() != nil {
		t.Fatalf("background run inherited request cancellation: %v", runCtx.Err())
	}

	done := waitForStatus(t, runner, run.RunID, RunStatusCompleted)
	if done.Result == nil || done.Result.Records != 3 {
		t.Fatalf("unexpected run result: %+v", done.Result)
	}
	if done.FinishedAt == nil {
		t.Fatalf("expected finished time to be set")
	}
}

func TestCollectionRunner_FailedAndNoDataStatuses(t *testing.T) {
	t.Parallel()

	failing := &stubCollector{err: errors.New("boom")}
	runner, err := NewCollectionRunner(failing, 1, &sequenceIDs{}, nil, nil)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	defer func() { _ = runner.Release(time.Second) }()

	run, err := runner.Submit(context.Background(), 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	failed := waitForStatus(t, runner, run.RunID, RunStatusFailed)
	if failed.Error != "boom" {
		t.Fatalf("unexpected error message: %q", failed.Error)
	}

	empty := &stubCollector{result: CollectionResult{NoData: true}}
	noDataRunner, err := NewCollectionRunner(empty, 1, &sequenceIDs{}, nil, nil)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	defer func() { _ = noDataRunner.Release(time.Second) }()

	run, err = noDataRunner.Submit(context.Background(), 2)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	waitForStatus(t, noDataRunner, run.RunID, RunStatusNoData)
}

func TestCollectionRunner_UnknownRunIsNotFound(t *testing.T) {
	t.Parallel()

	runner, err := NewCollectionRunner(&stubCollector{}, 1, nil, nil, nil)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	defer func() { _ = runner.Release(0) }()

	if _, err := runner.Status(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := runner.Submit(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
