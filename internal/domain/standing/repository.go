package standing

import "context"

// ViewReader reads the store-maintained aggregate views. Callers fall back
// to in-app aggregation when a view query fails.
type ViewReader interface {
	ListStandings(ctx context.Context, leagueID int64, gameweek int) ([]Row, error)
	ListCaptainStats(ctx context.Context, leagueID int64) ([]CaptainStat, error)
}
