package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/league"
)

// PlayerGameweek is one row of an entry's history with team value in
// millions.
type PlayerGameweek struct {
	LeagueID      int64
	Gameweek      int
	Points        int64
	TotalPoints   int64
	PointsNet     int64
	Bank          int64
	TeamValue     float64
	Transfers     int64
	TransfersCost int64
	PointsOnBench int64
	OverallRank   int64
	CaptainName   *string
	ActiveChip    *string
}

type LeagueTrend struct {
	LeagueID           int64
	LeagueName         string
	TotalGameweeks     int
	BestGameweekPoints int64
	AveragePoints      float64
	LatestTotalPoints  int64
	LatestGameweek     int
}

type PlayerService struct {
	gameweekRepo gameweek.Repository
	leagueRepo   league.Repository
}

func NewPlayerService(gameweekRepo gameweek.Repository, leagueRepo league.Repository) *PlayerService {
	return &PlayerService{
		gameweekRepo: gameweekRepo,
		leagueRepo:   leagueRepo,
	}
}

func (s *PlayerService) History(ctx context.Context, entryID int64) ([]PlayerGameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.History", entryAttr(entryID))
	defer span.End()

	records, err := s.listRecords(ctx, entryID)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerGameweek, 0, len(records))
	for _, record := range records {
		out = append(out, PlayerGameweek{
			LeagueID:      record.LeagueID,
			Gameweek:      record.Gameweek,
			Points:        record.Points,
			TotalPoints:   record.TotalPoints,
			PointsNet:     record.PointsNet,
			Bank:          record.Bank,
			TeamValue:     gameweek.TeamValueFromTenths(record.TeamValue),
			Transfers:     record.Transfers,
			TransfersCost: record.TransfersCost,
			PointsOnBench: record.PointsOnBench,
			OverallRank:   record.OverallRank,
			CaptainName:   record.CaptainName,
			ActiveChip:    record.ActiveChip,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		return out[i].LeagueID < out[j].LeagueID
	})
	return out, nil
}

func (s *PlayerService) Trends(ctx context.Context, entryID int64) ([]LeagueTrend, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Trends", entryAttr(entryID))
	defer span.End()

	records, err := s.listRecords(ctx, entryID)
	if err != nil {
		return nil, err
	}

	byLeague := make(map[int64][]gameweek.Record)
	leagueIDs := make([]int64, 0)
	for _, record := range records {
		if _, ok := byLeague[record.LeagueID]; !ok {
			leagueIDs = append(leagueIDs, record.LeagueID)
		}
		byLeague[record.LeagueID] = append(byLeague[record.LeagueID], record)
	}
	sort.Slice(leagueIDs, func(i, j int) bool { return leagueIDs[i] < leagueIDs[j] })

	names := make(map[int64]string, len(leagueIDs))
	leagues, err := s.leagueRepo.ListByIDs(ctx, leagueIDs)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	for _, l := range leagues {
		names[l.ID] = l.Name
	}

	out := make([]LeagueTrend, 0, len(leagueIDs))
	for _, leagueID := range leagueIDs {
		out = append(out, buildLeagueTrend(leagueID, nameOr(names[leagueID], league.FallbackName(leagueID)), byLeague[leagueID]))
	}
	return out, nil
}

func (s *PlayerService) listRecords(ctx context.Context, entryID int64) ([]gameweek.Record, error) {
	if entryID <= 0 {
		return nil, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}

	records, err := s.gameweekRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("list entry records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records for entry=%d", ErrNotFound, entryID)
	}
	return records, nil
}

func buildLeagueTrend(leagueID int64, name string, records []gameweek.Record) LeagueTrend {
	trend := LeagueTrend{
		LeagueID:       leagueID,
		LeagueName:     name,
		TotalGameweeks: len(records),
	}

	var sum int64
	for i, record := range records {
		sum += record.Points
		if i == 0 || record.Points > trend.BestGameweekPoints {
			trend.BestGameweekPoints = record.Points
		}
		if record.Gameweek >= trend.LatestGameweek {
			trend.LatestGameweek = record.Gameweek
			trend.LatestTotalPoints = record.TotalPoints
		}
	}
	if len(records) > 0 {
		trend.AveragePoints = roundOneDecimal(float64(sum) / float64(len(records)))
	}
	return trend
}
