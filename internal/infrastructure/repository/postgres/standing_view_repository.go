package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/standing"
	qb "github.com/riskibarqy/fpl-league-sync/internal/platform/querybuilder"
)

type standingViewModel struct {
	LeagueID        int64          `db:"league_id"`
	EntryID         int64          `db:"entry_id"`
	Gameweek        int            `db:"gameweek"`
	Position        int            `db:"position"`
	PlayerName      string         `db:"player_name"`
	TeamName        string         `db:"team_name"`
	GameweekPoints  int64          `db:"gameweek_points"`
	TotalPoints     int64          `db:"total_points"`
	TransfersCost   int64          `db:"transfers_cost"`
	PointsOnBench   int64          `db:"points_on_bench"`
	CaptainName     sql.NullString `db:"captain_name"`
	ViceCaptainName sql.NullString `db:"vice_captain_name"`
	ActiveChip      sql.NullString `db:"active_chip"`
}

type captainStatViewModel struct {
	CaptainID        int64           `db:"captain_id"`
	CaptainName      string          `db:"captain_name"`
	TimesCaptained   int             `db:"times_captained"`
	TotalPoints      int64           `db:"total_points"`
	AveragePoints    sql.NullFloat64 `db:"average_points"`
	BestPerformance  int64           `db:"best_performance"`
	WorstPerformance int64           `db:"worst_performance"`
}

// StandingViewRepository reads league_standings_view and captain_analysis_view.
type StandingViewRepository struct {
	db *sqlx.DB
}

func NewStandingViewRepository(db *sqlx.DB) *StandingViewRepository {
	return &StandingViewRepository{db: db}
}

func (r *StandingViewRepository) ListStandings(ctx context.Context, leagueID int64, gw int) ([]standing.Row, error) {
	query, args, err := qb.Select(
		"league_id",
		"entry_id",
		"gameweek",
		"position",
		"player_name",
		"team_name",
		"gameweek_points",
		"total_points",
		"transfers_cost",
		"points_on_bench",
		"captain_name",
		"vice_captain_name",
		"active_chip",
	).From("league_standings_view").
		Where(qb.Eq("league_id", leagueID), qb.Eq("gameweek", gw)).
		OrderBy("position", "entry_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings view query: %w", err)
	}

	var rows []standingViewModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings view: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Row{
			LeagueID:        row.LeagueID,
			EntryID:         row.EntryID,
			Gameweek:        row.Gameweek,
			Position:        row.Position,
			PlayerName:      row.PlayerName,
			TeamName:        row.TeamName,
			GameweekPoints:  row.GameweekPoints,
			TotalPoints:     row.TotalPoints,
			TransfersCost:   row.TransfersCost,
			PointsOnBench:   row.PointsOnBench,
			CaptainName:     nullStringPtr(row.CaptainName),
			ViceCaptainName: nullStringPtr(row.ViceCaptainName),
			ActiveChip:      nullStringPtr(row.ActiveChip),
		})
	}
	return out, nil
}

// captainStatsQuery orders captains the way the in-app aggregation does:
// total points first, captain id as the tiebreak.
func captainStatsQuery(leagueID int64) (string, []any, error) {
	return qb.Select(
		"captain_id",
		"captain_name",
		"times_captained",
		"total_points",
		"average_points",
		"best_performance",
		"worst_performance",
	).From("captain_analysis_view").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("total_points DESC", "captain_id").
		ToSQL()
}

func (r *StandingViewRepository) ListCaptainStats(ctx context.Context, leagueID int64) ([]standing.CaptainStat, error) {
	query, args, err := captainStatsQuery(leagueID)
	if err != nil {
		return nil, fmt.Errorf("build select captain view query: %w", err)
	}

	var rows []captainStatViewModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select captain view: %w", err)
	}

	out := make([]standing.CaptainStat, 0, len(rows))
	for _, row := range rows {
		avg := 0.0
		if v := nullFloat64Ptr(row.AveragePoints); v != nil {
			avg = *v
		}
		out = append(out, standing.CaptainStat{
			CaptainID:        row.CaptainID,
			CaptainName:      row.CaptainName,
			TimesCaptained:   row.TimesCaptained,
			TotalPoints:      row.TotalPoints,
			AveragePoints:    avg,
			BestPerformance:  row.BestPerformance,
			WorstPerformance: row.WorstPerformance,
		})
	}
	return out, nil
}
