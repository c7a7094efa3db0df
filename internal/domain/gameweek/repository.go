package gameweek

import "context"

// Repository persists gameweek facts. Upserts replace on the natural key.
type Repository interface {
	UpsertRecords(ctx context.Context, items []Record) error
	UpsertChipUsages(ctx context.Context, items []ChipUsage) error
	HasScoredRecord(ctx context.Context, leagueID int64, gameweek int) (bool, error)
	HasAnyRecord(ctx context.Context, leagueID int64, gameweek int) (bool, error)
	ListByLeagueGameweek(ctx context.Context, leagueID int64, gameweek int) ([]Record, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Record, error)
	ListByEntry(ctx context.Context, entryID int64) ([]Record, error)
	ListChipUsagesByLeague(ctx context.Context, leagueID int64) ([]ChipUsage, error)
}
