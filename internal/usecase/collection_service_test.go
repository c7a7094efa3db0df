package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/footballer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/globalplayer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/league"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/membership"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/upsert"
	footballermock "github.com/riskibarqy/fpl-league-sync/internal/mocks/domain/footballer"
	gameweekmock "github.com/riskibarqy/fpl-league-sync/internal/mocks/domain/gameweek"
	globalplayermock "github.com/riskibarqy/fpl-league-sync/internal/mocks/domain/globalplayer"
	leaguemock "github.com/riskibarqy/fpl-league-sync/internal/mocks/domain/league"
	membershipmock "github.com/riskibarqy/fpl-league-sync/internal/mocks/domain/membership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type collectionFixture struct {
	upstream    *fakeUpstream
	leagues     *leaguemock.Repository
	players     *globalplayermock.Repository
	memberships *membershipmock.Repository
	footballers *footballermock.Repository
	gameweeks   *gameweekmock.Repository
	pauses      int
	mu          sync.Mutex
	order       []string
}

func newCollectionFixture(t *testing.T, upstream *fakeUpstream) *collectionFixture {
	t.Helper()
	return &collectionFixture{
		upstream:    upstream,
		leagues:     leaguemock.NewRepository(t),
		players:     globalplayermock.NewRepository(t),
		memberships: membershipmock.NewRepository(t),
		footballers: footballermock.NewRepository(t),
		gameweeks:   gameweekmock.NewRepository(t),
	}
}

func (f *collectionFixture) track(step string) func(mock.Arguments) {
	return func(mock.Arguments) {
		f.mu.Lock()
		f.order = append(f.order, step)
		f.mu.Unlock()
	}
}

func (f *collectionFixture) service() *CollectionService {
	return NewCollectionService(f.upstream, f.leagues, f.players, f.memberships, f.footballers, f.gameweeks, CollectionConfig{
		EntryPause: DefaultEntryPause,
		Sleep:      func(context.Context, time.Duration) { f.pauses++ },
		Now:        func() time.Time { return normalizeNow },
	})
}

func fiveEntryUpstream() *fakeUpstream {
	upstream := &fakeUpstream{
		current: CurrentGameweek{Gameweek: 12},
		standings: ExternalLeagueStandings{
			LeagueID: 314,
			Name:     "Office League",
		},
		catalog:   []ExternalFootballer{{ID: 100, WebName: "Saka"}},
		histories: map[int64]ExternalEntryHistory{},
		picks:     map[int64]ExternalEntryPicks{},
	}
	for i := int64(1); i <= 5; i++ {
		upstream.standings.Entries = append(upstream.standings.Entries, ExternalStandingEntry{
			EntryID:    i,
			PlayerName: "Manager",
			EntryName:  "Team",
			Total:      500 - i,
			Rank:       i,
		})
		upstream.histories[i] = historyFor(12, int(40+i), 0)
		upstream.picks[i] = picksWithCaptain(100)
	}
	return upstream
}

func TestCollectionService_Run_IsolatesFailingEntry(t *testing.T) {
	t.Parallel()

	upstream := fiveEntryUpstream()
	upstream.histories[3] = ExternalEntryHistory{}
	f := newCollectionFixture(t, upstream)

	f.leagues.On("Upsert", mock.Anything, league.League{ID: 314, Name: "Office League", UpdatedAt: normalizeNow}).Return(nil).Once()
	f.players.On("UpsertBulk", mock.Anything, mock.AnythingOfType("[]globalplayer.Player")).Return(nil).Once()
	f.memberships.On("UpsertBulk", mock.Anything, mock.AnythingOfType("[]membership.Membership")).Return(nil).Once()
	f.footballers.On("UpsertBulk", mock.Anything, mock.AnythingOfType("[]footballer.Footballer")).Return(nil).Once()

	var stored []gameweek.Record
	f.gameweeks.On("UpsertRecords", mock.Anything, mock.AnythingOfType("[]gameweek.Record")).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]gameweek.Record) }).
		Return(nil).Once()

	result, err := f.service().Run(context.Background(), 314)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 4, result.Records)
	assert.Equal(t, 12, result.Gameweek)
	assert.Equal(t, 5, f.pauses)
	assert.Equal(t, 5, countCalls(upstream, "history"))
	assert.Equal(t, 4, countCalls(upstream, "picks"), "picks are not fetched for an entry without history")

	require.Len(t, stored, 4)
	gotIDs := []int64{stored[0].EntryID, stored[1].EntryID, stored[2].EntryID, stored[3].EntryID}
	assert.Equal(t, []int64{1, 2, 4, 5}, gotIDs)
	for _, record := range stored {
		assert.Equal(t, 12, record.Gameweek)
		assert.Equal(t, "Saka", *record.CaptainName)
	}
}

func countCalls(upstream *fakeUpstream, call string) int {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	n := 0
	for _, c := range upstream.calls {
		if c == call {
			n++
		}
	}
	return n
}

func TestCollectionService_Run_CountsRepeatedEntryOnce(t *testing.T) {
	t.Parallel()

	upstream := fiveEntryUpstream()
	// Entry 2 shows up again on a later page after the table moved.
	upstream.standings.Entries = append(upstream.standings.Entries, upstream.standings.Entries[1])
	f := newCollectionFixture(t, upstream)

	var players []globalplayer.Player
	f.leagues.On("Upsert", mock.Anything, mock.AnythingOfType("league.League")).Return(nil).Once()
	f.players.On("UpsertBulk", mock.Anything, mock.AnythingOfType("[]globalplayer.Player")).
		Run(func(args mock.Arguments) { players = args.Get(1).([]globalplayer.Player) }).
		Return(nil).Once()
	f.memberships.On("UpsertBulk", mock.Anything, mock.AnythingOfType("[]membership.Membership")).Return(nil).Once()
	f.footballers.On("UpsertBulk", mock.Anything, mock.AnythingOfType("[]footballer.Footballer")).Return(nil).Once()

	var stored []gameweek.Record
	f.gameweeks.On("UpsertRecords", mock.Anything, mock.AnythingOfType("[]gameweek.Record")).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]gameweek.Record) }).
		Return(nil).Once()

	result, err := f.service().Run(context.Background(), 314)
	require.NoError(t, err)

	assert.Len(t, players, 5)
	assert.Len(t, stored, 5)
	assert.Equal(t, 5, result.Succeeded)
	assert.Equal(t, 5, result.Records)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 5, countCalls(upstream, "history"))
}

func TestCollectionService_Run_AbortsBeforeFactsWhenNoPlayerStored(t *testing.T) {
	t.Parallel()

	f := newCollectionFixture(t, fiveEntryUpstream())

	f.leagues.On("Upsert", mock.Anything, mock.AnythingOfType("league.League")).Return(nil).Once()
	f.players.On("UpsertBulk", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
	f.players.On("Insert", mock.Anything, mock.AnythingOfType("globalplayer.Player")).
		Return(upsert.Failed(errors.New("connection reset"))).Times(5)

	result, err := f.service().Run(context.Background(), 314)
	if !errors.Is(err, ErrPrerequisiteFailed) {
		t.Fatalf("expected ErrPrerequisiteFailed, got %v", err)
	}
	assert.Zero(t, result.Records)
	f.gameweeks.AssertNotCalled(t, "UpsertRecords", mock.Anything, mock.Anything)
	f.memberships.AssertNotCalled(t, "UpsertBulk", mock.Anything, mock.Anything)
	assert.NotContains(t, f.upstream.calls, "history")
}

func TestCollectionService_Run_WritesDimensionsBeforeFacts(t *testing.T) {
	t.Parallel()

	f := newCollectionFixture(t, fiveEntryUpstream())

	f.leagues.On("Upsert", mock.Anything, mock.Anything).Run(f.track("league")).Return(nil).Once()
	f.players.On("UpsertBulk", mock.Anything, mock.Anything).Run(f.track("players")).Return(nil).Once()
	f.memberships.On("UpsertBulk", mock.Anything, mock.Anything).Run(f.track("memberships")).Return(nil).Once()
	f.footballers.On("UpsertBulk", mock.Anything, mock.Anything).Run(f.track("footballers")).Return(nil).Once()
	f.gameweeks.On("UpsertRecords", mock.Anything, mock.Anything).Run(f.track("records")).Return(nil).Once()

	_, err := f.service().Run(context.Background(), 314)
	require.NoError(t, err)
	assert.Equal(t, []string{"league", "players", "memberships", "footballers", "records"}, f.order)
}

func TestCollectionService_Run_PartialPlayerFailureSkipsEntry(t *testing.T) {
	t.Parallel()

	f := newCollectionFixture(t, fiveEntryUpstream())

	f.leagues.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	f.players.On("UpsertBulk", mock.Anything, mock.Anything).Return(errors.New("deadlock detected")).Once()
	f.players.On("Insert", mock.Anything, mock.MatchedBy(func(p globalplayer.Player) bool { return p.EntryID == 2 })).
		Return(upsert.Failed(errors.New("timeout"))).Once()
	f.players.On("Insert", mock.Anything, mock.MatchedBy(func(p globalplayer.Player) bool { return p.EntryID == 4 })).
		Return(upsert.AlreadyExists(errors.New("duplicate key"))).Once()
	f.players.On("Update", mock.Anything, mock.MatchedBy(func(p globalplayer.Player) bool { return p.EntryID == 4 })).
		Return(nil).Once()
	f.players.On("Insert", mock.Anything, mock.Anything).Return(upsert.Created()).Times(3)

	f.memberships.On("UpsertBulk", mock.Anything, mock.MatchedBy(func(items []membership.Membership) bool {
		return len(items) == 4
	})).Return(nil).Once()
	f.footballers.On("UpsertBulk", mock.Anything, mock.Anything).Return(nil).Once()

	var stored []gameweek.Record
	f.gameweeks.On("UpsertRecords", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]gameweek.Record) }).
		Return(nil).Once()

	result, err := f.service().Run(context.Background(), 314)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	for _, record := range stored {
		assert.NotEqual(t, int64(2), record.EntryID)
	}
}

func TestCollectionService_Run_NoStandingsIsNoData(t *testing.T) {
	t.Parallel()

	f := newCollectionFixture(t, &fakeUpstream{current: CurrentGameweek{Gameweek: 5}})

	result, err := f.service().Run(context.Background(), 99)
	require.NoError(t, err)
	assert.True(t, result.NoData)
	assert.Zero(t, result.Succeeded)
	assert.Zero(t, result.Failed)
}

func TestCollectionService_Run_CatalogStoreFailureStillResolvesCaptains(t *testing.T) {
	t.Parallel()

	f := newCollectionFixture(t, fiveEntryUpstream())

	f.leagues.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	f.players.On("UpsertBulk", mock.Anything, mock.Anything).Return(nil).Once()
	f.memberships.On("UpsertBulk", mock.Anything, mock.Anything).Return(nil).Once()
	f.footballers.On("UpsertBulk", mock.Anything, mock.MatchedBy(func(items []footballer.Footballer) bool {
		return len(items) == 1 && items[0].WebName == "Saka"
	})).Return(errors.New("disk full")).Once()

	var stored []gameweek.Record
	f.gameweeks.On("UpsertRecords", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]gameweek.Record) }).
		Return(nil).Once()

	_, err := f.service().Run(context.Background(), 314)
	require.NoError(t, err)
	require.NotEmpty(t, stored)
	assert.Equal(t, "Saka", *stored[0].CaptainName)
}

func TestCollectionService_Run_RejectsInvalidLeague(t *testing.T) {
	t.Parallel()

	f := newCollectionFixture(t, &fakeUpstream{})
	_, err := f.service().Run(context.Background(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
