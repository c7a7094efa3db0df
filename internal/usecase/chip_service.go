package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
)

type ChipPlay struct {
	EntryID  int64
	Gameweek int
}

type ChipSummary struct {
	ChipName string
	Count    int
	Plays    []ChipPlay
}

type ChipService struct {
	gameweekRepo gameweek.Repository
}

func NewChipService(gameweekRepo gameweek.Repository) *ChipService {
	return &ChipService{gameweekRepo: gameweekRepo}
}

func (s *ChipService) ListByLeague(ctx context.Context, leagueID int64) ([]ChipSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChipService.ListByLeague", leagueAttr(leagueID))
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	usages, err := s.gameweekRepo.ListChipUsagesByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list chip usages: %w", err)
	}
	if len(usages) == 0 {
		return nil, fmt.Errorf("%w: no chip usage for league=%d", ErrNotFound, leagueID)
	}

	return SummarizeChips(usages), nil
}

// SummarizeChips groups usages by chip name, busiest chip first.
func SummarizeChips(usages []gameweek.ChipUsage) []ChipSummary {
	byName := make(map[string]*ChipSummary)
	for _, usage := range usages {
		summary, ok := byName[usage.ChipName]
		if !ok {
			summary = &ChipSummary{ChipName: usage.ChipName}
			byName[usage.ChipName] = summary
		}
		summary.Count++
		summary.Plays = append(summary.Plays, ChipPlay{EntryID: usage.EntryID, Gameweek: usage.GameweekUsed})
	}

	out := make([]ChipSummary, 0, len(byName))
	for _, summary := range byName {
		sort.Slice(summary.Plays, func(i, j int) bool {
			if summary.Plays[i].Gameweek != summary.Plays[j].Gameweek {
				return summary.Plays[i].Gameweek < summary.Plays[j].Gameweek
			}
			return summary.Plays[i].EntryID < summary.Plays[j].EntryID
		})
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ChipName < out[j].ChipName
	})
	return out
}
