package usecase

import "context"

// UpstreamClient is the read-only view of the FPL API the pipeline needs.
// Implementations never fail: exhausted retries yield empty values, which
// callers must read as "unknown" rather than "zero".
type UpstreamClient interface {
	CurrentGameweek(ctx context.Context) CurrentGameweek
	LeagueStandings(ctx context.Context, leagueID int64) ExternalLeagueStandings
	FootballerCatalog(ctx context.Context) []ExternalFootballer
	EntryHistory(ctx context.Context, entryID int64) ExternalEntryHistory
	EntryPicks(ctx context.Context, entryID int64, gameweek int) ExternalEntryPicks
}

// CurrentGameweek carries the upstream current gameweek. Fallback is set when
// the value was not verified by the API.
type CurrentGameweek struct {
	Gameweek int
	Fallback bool
}

type ExternalLeagueStandings struct {
	LeagueID int64
	Name     string
	Entries  []ExternalStandingEntry
}

func (s ExternalLeagueStandings) Empty() bool {
	return len(s.Entries) == 0
}

type ExternalStandingEntry struct {
	EntryID    int64
	PlayerName string
	EntryName  string
	Total      int64
	Rank       int64
}

type ExternalFootballer struct {
	ID                int64
	FirstName         string
	SecondName        string
	WebName           string
	TeamID            *int64
	ElementType       *int64
	NowCost           *int64
	TotalPoints       int64
	Form              *float64
	SelectedByPercent *float64
}

// ExternalEntryHistory keeps upstream rows loosely typed; field coercion is
// the normalizer's job.
type ExternalEntryHistory struct {
	Current []map[string]any
	Chips   []map[string]any
}

func (h ExternalEntryHistory) Empty() bool {
	return len(h.Current) == 0
}

// ExternalEntryPicks holds one entry's squad for one gameweek. ActiveChip is
// passed through as decoded: a bare value, a list, or nil.
type ExternalEntryPicks struct {
	Picks      []map[string]any
	ActiveChip any
}
