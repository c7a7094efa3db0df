package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/footballer"
	qb "github.com/riskibarqy/fpl-league-sync/internal/platform/querybuilder"
)

var footballerUpsertSuffix = qb.OnConflictDoUpdate(
	[]string{"id"},
	"first_name",
	"second_name",
	"web_name",
	"team_id",
	"element_type",
	"now_cost",
	"total_points",
	"form",
	"selected_by_percent",
	"updated_at",
)

type FootballerRepository struct {
	db *sqlx.DB
}

func NewFootballerRepository(db *sqlx.DB) *FootballerRepository {
	return &FootballerRepository{db: db}
}

func (r *FootballerRepository) UpsertBulk(ctx context.Context, items []footballer.Footballer) error {
	items = dedupeLast(items, func(f footballer.Footballer) int64 { return f.ID })
	models := make([]any, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		models = append(models, footballerInsertModel{
			ID:                item.ID,
			FirstName:         item.FirstName,
			SecondName:        item.SecondName,
			WebName:           item.WebName,
			TeamID:            item.TeamID,
			ElementType:       item.ElementType,
			NowCost:           item.NowCost,
			TotalPoints:       item.TotalPoints,
			Form:              item.Form,
			SelectedByPercent: item.SelectedByPercent,
			UpdatedAt:         item.UpdatedAt,
		})
	}
	return execChunkedUpsert(ctx, r.db, "fpl_footballers", models, footballerUpsertSuffix)
}
