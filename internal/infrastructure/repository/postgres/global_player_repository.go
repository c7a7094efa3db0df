package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/globalplayer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/upsert"
	qb "github.com/riskibarqy/fpl-league-sync/internal/platform/querybuilder"
)

var globalPlayerUpsertSuffix = qb.OnConflictDoUpdate([]string{"entry_id"}, "player_name", "current_team_name", "last_updated")

type GlobalPlayerRepository struct {
	db *sqlx.DB
}

func NewGlobalPlayerRepository(db *sqlx.DB) *GlobalPlayerRepository {
	return &GlobalPlayerRepository{db: db}
}

func (r *GlobalPlayerRepository) UpsertBulk(ctx context.Context, items []globalplayer.Player) error {
	items = dedupeLast(items, func(p globalplayer.Player) int64 { return p.EntryID })
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, globalPlayerToInsertModel(item))
	}
	return execChunkedUpsert(ctx, r.db, "global_players", models, globalPlayerUpsertSuffix)
}

func (r *GlobalPlayerRepository) Insert(ctx context.Context, item globalplayer.Player) upsert.Result {
	query, args, err := qb.InsertModel("global_players", globalPlayerToInsertModel(item), "")
	if err != nil {
		return upsert.Failed(fmt.Errorf("build insert global player query: %w", err))
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return insertResult(err)
}

func (r *GlobalPlayerRepository) Update(ctx context.Context, item globalplayer.Player) error {
	query, args, err := qb.Update("global_players").
		Set("player_name", item.PlayerName).
		Set("current_team_name", item.CurrentTeamName).
		Set("last_updated", item.LastUpdated).
		Where(qb.Eq("entry_id", item.EntryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update global player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update global player entry_id=%d: %w", item.EntryID, err)
	}
	return nil
}

func (r *GlobalPlayerRepository) ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]globalplayer.Player, error) {
	if len(entryIDs) == 0 {
		return []globalplayer.Player{}, nil
	}

	query, args, err := qb.Select("entry_id", "player_name", "current_team_name", "first_seen", "last_updated").
		From("global_players").
		Where(qb.Any("entry_id", pq.Array(entryIDs))).
		OrderBy("entry_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select global players query: %w", err)
	}

	var rows []globalPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select global players: %w", err)
	}

	out := make([]globalplayer.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, globalplayer.Player{
			EntryID:         row.EntryID,
			PlayerName:      row.PlayerName,
			CurrentTeamName: row.CurrentTeamName,
			LastUpdated:     row.LastUpdated,
		})
	}
	return out, nil
}

func globalPlayerToInsertModel(item globalplayer.Player) globalPlayerInsertModel {
	return globalPlayerInsertModel{
		EntryID:         item.EntryID,
		PlayerName:      item.PlayerName,
		CurrentTeamName: item.CurrentTeamName,
		LastUpdated:     item.LastUpdated,
	}
}
