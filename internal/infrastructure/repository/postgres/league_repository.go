package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/league"
	qb "github.com/riskibarqy/fpl-league-sync/internal/platform/querybuilder"
)

var leagueSelectColumns = []string{"id", "name", "created_at", "updated_at"}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate league: %w", err)
	}

	query, args, err := qb.InsertModel("leagues", leagueInsertModel{
		ID:        item.ID,
		Name:      item.Name,
		UpdatedAt: item.UpdatedAt,
	}, qb.OnConflictDoUpdate([]string{"id"}, "name", "updated_at"))
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league id=%d: %w", item.ID, err)
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) ListByIDs(ctx context.Context, leagueIDs []int64) ([]league.League, error) {
	if len(leagueIDs) == 0 {
		return []league.League{}, nil
	}

	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(qb.Any("id", pq.Array(leagueIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues by ids query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues by ids: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:        row.ID,
		Name:      row.Name,
		UpdatedAt: row.UpdatedAt,
	}
}
