package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	qb "github.com/riskibarqy/fpl-league-sync/internal/platform/querybuilder"
)

var gameweekRecordColumns = []string{
	"league_id",
	"entry_id",
	"gameweek",
	"points",
	"total_points",
	"points_net",
	"bank",
	"team_value",
	"transfers",
	"transfers_cost",
	"points_on_bench",
	"overall_rank",
	"captain_id",
	"captain_name",
	"vice_captain_id",
	"vice_captain_name",
	"active_chip",
	"updated_at",
}

var gameweekRecordUpsertSuffix = qb.OnConflictDoUpdate(
	[]string{"league_id", "entry_id", "gameweek"},
	gameweekRecordColumns[3:]...,
)

var chipUsageUpsertSuffix = qb.OnConflictDoUpdate(
	[]string{"league_id", "entry_id", "chip_name"},
	"gameweek_used",
)

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) UpsertRecords(ctx context.Context, items []gameweek.Record) error {
	return execChunkedUpsert(ctx, r.db, "gameweek_records", gameweekRecordModels(items), gameweekRecordUpsertSuffix)
}

// gameweekRecordModels maps records to insert rows, last one wins per key.
func gameweekRecordModels(items []gameweek.Record) []any {
	items = dedupeLast(items, gameweek.Record.Key)
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, gameweekRecordInsertModel{
			LeagueID:        item.LeagueID,
			EntryID:         item.EntryID,
			Gameweek:        item.Gameweek,
			Points:          item.Points,
			TotalPoints:     item.TotalPoints,
			PointsNet:       item.PointsNet,
			Bank:            item.Bank,
			TeamValue:       item.TeamValue,
			Transfers:       item.Transfers,
			TransfersCost:   item.TransfersCost,
			PointsOnBench:   item.PointsOnBench,
			OverallRank:     item.OverallRank,
			CaptainID:       item.CaptainID,
			CaptainName:     item.CaptainName,
			ViceCaptainID:   item.ViceCaptainID,
			ViceCaptainName: item.ViceCaptainName,
			ActiveChip:      item.ActiveChip,
			UpdatedAt:       item.UpdatedAt,
		})
	}
	return models
}

func (r *GameweekRepository) UpsertChipUsages(ctx context.Context, items []gameweek.ChipUsage) error {
	items = dedupeLast(items, gameweek.ChipUsage.Key)
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, chipUsageInsertModel{
			LeagueID:     item.LeagueID,
			EntryID:      item.EntryID,
			ChipName:     item.ChipName,
			GameweekUsed: item.GameweekUsed,
			CreatedAt:    item.CreatedAt,
		})
	}
	return execChunkedUpsert(ctx, r.db, "chip_usages", models, chipUsageUpsertSuffix)
}

func (r *GameweekRepository) HasScoredRecord(ctx context.Context, leagueID int64, gw int) (bool, error) {
	return r.exists(ctx, qb.Eq("league_id", leagueID), qb.Eq("gameweek", gw), qb.Gt("points", 0))
}

func (r *GameweekRepository) HasAnyRecord(ctx context.Context, leagueID int64, gw int) (bool, error) {
	return r.exists(ctx, qb.Eq("league_id", leagueID), qb.Eq("gameweek", gw))
}

func (r *GameweekRepository) exists(ctx context.Context, conditions ...qb.Condition) (bool, error) {
	query, args, err := qb.Select("1").From("gameweek_records").
		Where(conditions...).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build gameweek exists query: %w", err)
	}

	var marker int
	if err := r.db.GetContext(ctx, &marker, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check gameweek records: %w", err)
	}
	return true, nil
}

func (r *GameweekRepository) ListByLeagueGameweek(ctx context.Context, leagueID int64, gw int) ([]gameweek.Record, error) {
	return r.listRecords(ctx, []string{"entry_id"}, qb.Eq("league_id", leagueID), qb.Eq("gameweek", gw))
}

func (r *GameweekRepository) ListByLeague(ctx context.Context, leagueID int64) ([]gameweek.Record, error) {
	return r.listRecords(ctx, []string{"gameweek", "entry_id"}, qb.Eq("league_id", leagueID))
}

func (r *GameweekRepository) ListByEntry(ctx context.Context, entryID int64) ([]gameweek.Record, error) {
	return r.listRecords(ctx, []string{"league_id", "gameweek"}, qb.Eq("entry_id", entryID))
}

func (r *GameweekRepository) listRecords(ctx context.Context, orderBy []string, conditions ...qb.Condition) ([]gameweek.Record, error) {
	query, args, err := qb.Select(gameweekRecordColumns...).From("gameweek_records").
		Where(conditions...).
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select gameweek records query: %w", err)
	}

	var rows []gameweekRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select gameweek records: %w", err)
	}

	out := make([]gameweek.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweek.Record{
			LeagueID:        row.LeagueID,
			EntryID:         row.EntryID,
			Gameweek:        row.Gameweek,
			Points:          row.Points,
			TotalPoints:     row.TotalPoints,
			PointsNet:       row.PointsNet,
			Bank:            row.Bank,
			TeamValue:       row.TeamValue,
			Transfers:       row.Transfers,
			TransfersCost:   row.TransfersCost,
			PointsOnBench:   row.PointsOnBench,
			OverallRank:     row.OverallRank,
			CaptainID:       nullInt64Ptr(row.CaptainID),
			CaptainName:     nullStringPtr(row.CaptainName),
			ViceCaptainID:   nullInt64Ptr(row.ViceCaptainID),
			ViceCaptainName: nullStringPtr(row.ViceCaptainName),
			ActiveChip:      nullStringPtr(row.ActiveChip),
			UpdatedAt:       row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *GameweekRepository) ListChipUsagesByLeague(ctx context.Context, leagueID int64) ([]gameweek.ChipUsage, error) {
	query, args, err := qb.Select("league_id", "entry_id", "chip_name", "gameweek_used", "created_at").
		From("chip_usages").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("gameweek_used", "entry_id", "chip_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select chip usages query: %w", err)
	}

	var rows []chipUsageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select chip usages: %w", err)
	}

	out := make([]gameweek.ChipUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweek.ChipUsage{
			LeagueID:     row.LeagueID,
			EntryID:      row.EntryID,
			ChipName:     row.ChipName,
			GameweekUsed: row.GameweekUsed,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}
