package cache

import (
	"context"
	"slices"
	"strconv"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/league"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/standing"
	basecache "github.com/riskibarqy/fpl-league-sync/internal/platform/cache"
)

// Keys are grouped per league ("league:<id>:") and per entry ("entry:<id>:")
// so a finished collection run can drop everything it touched.

func leaguePrefix(leagueID int64) string {
	return "league:" + strconv.FormatInt(leagueID, 10) + ":"
}

func entryPrefix(entryID int64) string {
	return "entry:" + strconv.FormatInt(entryID, 10) + ":"
}

// InvalidateLeague drops cached reads for a league and for the given entries.
func InvalidateLeague(ctx context.Context, store *basecache.Store, leagueID int64, entryIDs ...int64) {
	if store == nil {
		return
	}
	store.DeletePrefix(ctx, leaguePrefix(leagueID))
	for _, entryID := range entryIDs {
		store.DeletePrefix(ctx, entryPrefix(entryID))
	}
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, leaguePrefix(item.ID)+"info")
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leaguePrefix(leagueID)+"info", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

// ListByIDs is not cached; the id set varies per entry.
func (r *LeagueRepository) ListByIDs(ctx context.Context, leagueIDs []int64) ([]league.League, error) {
	return r.next.ListByIDs(ctx, leagueIDs)
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type GameweekRepository struct {
	next  gameweek.Repository
	cache *basecache.Store
}

func NewGameweekRepository(next gameweek.Repository, cache *basecache.Store) *GameweekRepository {
	return &GameweekRepository{next: next, cache: cache}
}

func (r *GameweekRepository) UpsertRecords(ctx context.Context, items []gameweek.Record) error {
	if err := r.next.UpsertRecords(ctx, items); err != nil {
		return err
	}
	for _, item := range items {
		r.cache.DeletePrefix(ctx, leaguePrefix(item.LeagueID))
		r.cache.DeletePrefix(ctx, entryPrefix(item.EntryID))
	}
	return nil
}

func (r *GameweekRepository) UpsertChipUsages(ctx context.Context, items []gameweek.ChipUsage) error {
	if err := r.next.UpsertChipUsages(ctx, items); err != nil {
		return err
	}
	seen := make(map[int64]struct{}, 1)
	for _, item := range items {
		if _, ok := seen[item.LeagueID]; ok {
			continue
		}
		seen[item.LeagueID] = struct{}{}
		r.cache.Delete(ctx, leaguePrefix(item.LeagueID)+"chips")
	}
	return nil
}

// Existence probes drive gameweek selection and always hit the store.
func (r *GameweekRepository) HasScoredRecord(ctx context.Context, leagueID int64, gw int) (bool, error) {
	return r.next.HasScoredRecord(ctx, leagueID, gw)
}

func (r *GameweekRepository) HasAnyRecord(ctx context.Context, leagueID int64, gw int) (bool, error) {
	return r.next.HasAnyRecord(ctx, leagueID, gw)
}

func (r *GameweekRepository) ListByLeagueGameweek(ctx context.Context, leagueID int64, gw int) ([]gameweek.Record, error) {
	key := leaguePrefix(leagueID) + "records:gw:" + strconv.Itoa(gw)
	return loadRecords(ctx, r.cache, key, func(ctx context.Context) ([]gameweek.Record, error) {
		return r.next.ListByLeagueGameweek(ctx, leagueID, gw)
	})
}

func (r *GameweekRepository) ListByLeague(ctx context.Context, leagueID int64) ([]gameweek.Record, error) {
	return loadRecords(ctx, r.cache, leaguePrefix(leagueID)+"records", func(ctx context.Context) ([]gameweek.Record, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
}

func (r *GameweekRepository) ListByEntry(ctx context.Context, entryID int64) ([]gameweek.Record, error) {
	return loadRecords(ctx, r.cache, entryPrefix(entryID)+"records", func(ctx context.Context) ([]gameweek.Record, error) {
		return r.next.ListByEntry(ctx, entryID)
	})
}

func (r *GameweekRepository) ListChipUsagesByLeague(ctx context.Context, leagueID int64) ([]gameweek.ChipUsage, error) {
	v, err := r.cache.GetOrLoad(ctx, leaguePrefix(leagueID)+"chips", func(ctx context.Context) (any, error) {
		items, err := r.next.ListChipUsagesByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gameweek.ChipUsage)
	return slices.Clone(items), nil
}

func loadRecords(ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]gameweek.Record, error)) ([]gameweek.Record, error) {
	v, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gameweek.Record)
	return slices.Clone(items), nil
}

// StandingViewReader caches view reads. View errors are not cached, so the
// caller's in-app fallback still runs on every failure.
type StandingViewReader struct {
	next  standing.ViewReader
	cache *basecache.Store
}

func NewStandingViewReader(next standing.ViewReader, cache *basecache.Store) *StandingViewReader {
	return &StandingViewReader{next: next, cache: cache}
}

func (r *StandingViewReader) ListStandings(ctx context.Context, leagueID int64, gw int) ([]standing.Row, error) {
	key := leaguePrefix(leagueID) + "standings:gw:" + strconv.Itoa(gw)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListStandings(ctx, leagueID, gw)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standing.Row)
	return slices.Clone(items), nil
}

func (r *StandingViewReader) ListCaptainStats(ctx context.Context, leagueID int64) ([]standing.CaptainStat, error) {
	v, err := r.cache.GetOrLoad(ctx, leaguePrefix(leagueID)+"captains", func(ctx context.Context) (any, error) {
		items, err := r.next.ListCaptainStats(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standing.CaptainStat)
	return slices.Clone(items), nil
}
