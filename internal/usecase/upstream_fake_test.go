package usecase

import (
	"context"
	"sync"
)

type fakeUpstream struct {
	mu        sync.Mutex
	current   CurrentGameweek
	standings ExternalLeagueStandings
	catalog   []ExternalFootballer
	histories map[int64]ExternalEntryHistory
	picks     map[int64]ExternalEntryPicks
	calls     []string
}

func (f *fakeUpstream) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeUpstream) CurrentGameweek(context.Context) CurrentGameweek {
	f.record("current")
	return f.current
}

func (f *fakeUpstream) LeagueStandings(context.Context, int64) ExternalLeagueStandings {
	f.record("standings")
	return f.standings
}

func (f *fakeUpstream) FootballerCatalog(context.Context) []ExternalFootballer {
	f.record("catalog")
	return f.catalog
}

func (f *fakeUpstream) EntryHistory(_ context.Context, entryID int64) ExternalEntryHistory {
	f.record("history")
	return f.histories[entryID]
}

func (f *fakeUpstream) EntryPicks(_ context.Context, entryID int64, _ int) ExternalEntryPicks {
	f.record("picks")
	return f.picks[entryID]
}

func historyFor(gw int, points, cost int) ExternalEntryHistory {
	return ExternalEntryHistory{
		Current: []map[string]any{
			{"event": float64(gw), "points": float64(points), "event_transfers_cost": float64(cost), "value": float64(1005), "bank": float64(3)},
		},
	}
}

func picksWithCaptain(element int64) ExternalEntryPicks {
	return ExternalEntryPicks{
		Picks: []map[string]any{
			{"element": float64(element), "is_captain": true, "is_vice_captain": false},
			{"element": float64(element + 1), "is_captain": false, "is_vice_captain": true},
		},
	}
}
