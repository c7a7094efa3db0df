// Command collect runs one reconciliation pass per league id given on the
// command line and exits non-zero when any league fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/riskibarqy/fpl-league-sync/internal/app"
	"github.com/riskibarqy/fpl-league-sync/internal/config"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <league-id> [league-id...]\n", os.Args[0])
	}
	flag.Parse()

	leagueIDs, err := parseLeagueIDs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg.SchedulerEnabled = false

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Output: os.Stderr,
		Fields: []any{"service", cfg.ServiceName, "command", "collect"},
	})
	logging.SetDefault(logger)

	if err := run(cfg, logger, leagueIDs); err != nil {
		logger.Error("collect failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, logger *logging.Logger, leagueIDs []int64) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	container, err := app.Build(cfg, db, logger)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() { _ = container.Close(cfg.ShutdownTimeout) }()

	var errs []error
	for _, leagueID := range leagueIDs {
		result, err := container.Collector.Run(ctx, leagueID)
		if err != nil {
			errs = append(errs, fmt.Errorf("league %d: %w", leagueID, err))
			continue
		}
		logger.Info("league collected",
			"league_id", result.LeagueID,
			"league_name", result.LeagueName,
			"gameweek", result.Gameweek,
			"outcome", result.Outcome(),
			"records", result.Records,
			"chips", result.Chips,
			"succeeded", result.Succeeded,
			"failed", result.Failed,
		)
	}
	return errors.Join(errs...)
}

func parseLeagueIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one league id is required")
	}

	out := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid league id %q", part)
			}
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("at least one league id is required")
	}
	return out, nil
}
