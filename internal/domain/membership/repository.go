package membership

import (
	"context"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/upsert"
)

type Repository interface {
	UpsertBulk(ctx context.Context, items []Membership) error
	Insert(ctx context.Context, item Membership) upsert.Result
	Update(ctx context.Context, item Membership) error
	ListByLeague(ctx context.Context, leagueID int64, entryIDs []int64) ([]Membership, error)
}
