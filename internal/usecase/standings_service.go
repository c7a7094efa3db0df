package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/globalplayer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/membership"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/standing"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

const (
	unknownPlayerLabel = "Unknown Player"
	unknownTeamLabel   = "Unknown Team"
)

type LeagueStandings struct {
	LeagueID  int64
	Selection GameweekSelection
	Rows      []standing.Row
}

type StandingsService struct {
	selector       *GameweekSelector
	viewReader     standing.ViewReader
	gameweekRepo   gameweek.Repository
	playerRepo     globalplayer.Repository
	membershipRepo membership.Repository
	logger         *logging.Logger
}

func NewStandingsService(
	selector *GameweekSelector,
	viewReader standing.ViewReader,
	gameweekRepo gameweek.Repository,
	playerRepo globalplayer.Repository,
	membershipRepo membership.Repository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		selector:       selector,
		viewReader:     viewReader,
		gameweekRepo:   gameweekRepo,
		playerRepo:     playerRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

func (s *StandingsService) ListByLeague(ctx context.Context, leagueID int64, requested *int) (LeagueStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListByLeague", leagueAttr(leagueID))
	defer span.End()

	if leagueID <= 0 {
		return LeagueStandings{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	selection := s.selector.Select(ctx, leagueID, requested)
	rows, err := s.viewReader.ListStandings(ctx, leagueID, selection.Gameweek)
	if err != nil {
		s.logger.WarnContext(ctx, "standings view failed, aggregating in app", "league_id", leagueID, "gameweek", selection.Gameweek, "error", err)
		rows, err = s.aggregate(ctx, leagueID, selection.Gameweek)
		if err != nil {
			return LeagueStandings{}, err
		}
	}
	if len(rows) == 0 {
		return LeagueStandings{}, fmt.Errorf("%w: no data found for league=%d gameweek=%d, run collection first", ErrNotFound, leagueID, selection.Gameweek)
	}

	return LeagueStandings{
		LeagueID:  leagueID,
		Selection: selection,
		Rows:      rankRows(rows),
	}, nil
}

func (s *StandingsService) aggregate(ctx context.Context, leagueID int64, gw int) ([]standing.Row, error) {
	records, err := s.gameweekRepo.ListByLeagueGameweek(ctx, leagueID, gw)
	if err != nil {
		return nil, fmt.Errorf("list gameweek records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entryIDs := make([]int64, 0, len(records))
	for _, record := range records {
		entryIDs = append(entryIDs, record.EntryID)
	}

	players, err := s.playerRepo.ListByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("list global players: %w", err)
	}
	playerNames := make(map[int64]string, len(players))
	for _, p := range players {
		playerNames[p.EntryID] = p.PlayerName
	}

	memberships, err := s.membershipRepo.ListByLeague(ctx, leagueID, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("list league memberships: %w", err)
	}
	teamNames := make(map[int64]string, len(memberships))
	for _, m := range memberships {
		teamNames[m.EntryID] = m.TeamName
	}

	rows := make([]standing.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, standing.Row{
			LeagueID:        record.LeagueID,
			EntryID:         record.EntryID,
			Gameweek:        record.Gameweek,
			PlayerName:      nameOr(playerNames[record.EntryID], unknownPlayerLabel),
			TeamName:        nameOr(teamNames[record.EntryID], unknownTeamLabel),
			GameweekPoints:  record.Points,
			TotalPoints:     record.TotalPoints,
			TransfersCost:   record.TransfersCost,
			PointsOnBench:   record.PointsOnBench,
			CaptainName:     record.CaptainName,
			ViceCaptainName: record.ViceCaptainName,
			ActiveChip:      record.ActiveChip,
		})
	}
	return rows, nil
}

// rankRows orders by total points and assigns 1-based positions. Ties keep
// entry id order so positions are stable across calls.
func rankRows(rows []standing.Row) []standing.Row {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].EntryID < rows[j].EntryID
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
