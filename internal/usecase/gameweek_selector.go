package usecase

import (
	"context"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

const (
	GameweekSourceRequested = "requested"
	GameweekSourceCurrent   = "current"
	GameweekSourcePrevious  = "previous"
	GameweekSourceFallback  = "fallback"
)

type GameweekSelection struct {
	Gameweek int
	Source   string
}

// GameweekSelector picks the gameweek a read should target. Early in a
// gameweek the upstream "current" one has no scores yet, so the previous
// gameweek is preferred when it holds data.
type GameweekSelector struct {
	upstream     UpstreamClient
	gameweekRepo gameweek.Repository
	logger       *logging.Logger
}

func NewGameweekSelector(upstream UpstreamClient, gameweekRepo gameweek.Repository, logger *logging.Logger) *GameweekSelector {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameweekSelector{
		upstream:     upstream,
		gameweekRepo: gameweekRepo,
		logger:       logger,
	}
}

func (s *GameweekSelector) Select(ctx context.Context, leagueID int64, requested *int) GameweekSelection {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekSelector.Select", leagueAttr(leagueID))
	defer span.End()

	if requested != nil {
		return GameweekSelection{Gameweek: *requested, Source: GameweekSourceRequested}
	}

	current := s.upstream.CurrentGameweek(ctx).Gameweek
	if current < 1 {
		current = 1
	}

	scored, err := s.gameweekRepo.HasScoredRecord(ctx, leagueID, current)
	if err != nil {
		s.logger.WarnContext(ctx, "check scored gameweek failed, using current", "league_id", leagueID, "gameweek", current, "error", err)
		return GameweekSelection{Gameweek: current, Source: GameweekSourceFallback}
	}
	if scored {
		return GameweekSelection{Gameweek: current, Source: GameweekSourceCurrent}
	}

	previous := max(1, current-1)
	exists, err := s.gameweekRepo.HasAnyRecord(ctx, leagueID, previous)
	if err != nil {
		s.logger.WarnContext(ctx, "check previous gameweek failed, using current", "league_id", leagueID, "gameweek", previous, "error", err)
		return GameweekSelection{Gameweek: current, Source: GameweekSourceFallback}
	}
	if exists {
		return GameweekSelection{Gameweek: previous, Source: GameweekSourcePrevious}
	}

	return GameweekSelection{Gameweek: current, Source: GameweekSourceFallback}
}
