package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item League) error
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
	ListByIDs(ctx context.Context, leagueIDs []int64) ([]League, error)
}
