package globalplayer

import (
	"context"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/upsert"
)

// Repository persists global players. Rows must exist before any gameweek
// record references them.
type Repository interface {
	UpsertBulk(ctx context.Context, items []Player) error
	Insert(ctx context.Context, item Player) upsert.Result
	Update(ctx context.Context, item Player) error
	ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]Player, error)
}
