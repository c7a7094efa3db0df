package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/league"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/standing"
)

type LeagueSummary struct {
	League       league.League
	Selection    GameweekSelection
	ManagerCount int
	Leader       *standing.Row
	TopCaptain   *standing.CaptainStat
	ChipCounts   map[string]int
}

// LeagueSummaryService composes the other read services into one overview.
type LeagueSummaryService struct {
	leagueRepo league.Repository
	standings  *StandingsService
	captains   *CaptainService
	chips      *ChipService
}

func NewLeagueSummaryService(leagueRepo league.Repository, standings *StandingsService, captains *CaptainService, chips *ChipService) *LeagueSummaryService {
	return &LeagueSummaryService{
		leagueRepo: leagueRepo,
		standings:  standings,
		captains:   captains,
		chips:      chips,
	}
}

func (s *LeagueSummaryService) Get(ctx context.Context, leagueID int64) (LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueSummaryService.Get", leagueAttr(leagueID))
	defer span.End()

	if leagueID <= 0 {
		return LeagueSummary{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return LeagueSummary{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return LeagueSummary{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	table, err := s.standings.ListByLeague(ctx, leagueID, nil)
	if err != nil {
		return LeagueSummary{}, err
	}

	out := LeagueSummary{
		League:       item,
		Selection:    table.Selection,
		ManagerCount: len(table.Rows),
		ChipCounts:   map[string]int{},
	}
	if len(table.Rows) > 0 {
		leader := table.Rows[0]
		out.Leader = &leader
	}

	analysis, err := s.captains.Analyze(ctx, leagueID)
	switch {
	case err == nil:
		out.TopCaptain = analysis.MostPopular
	case !errors.Is(err, ErrNotFound):
		return LeagueSummary{}, err
	}

	chips, err := s.chips.ListByLeague(ctx, leagueID)
	switch {
	case err == nil:
		for _, chip := range chips {
			out.ChipCounts[chip.ChipName] = chip.Count
		}
	case !errors.Is(err, ErrNotFound):
		return LeagueSummary{}, err
	}

	return out, nil
}
