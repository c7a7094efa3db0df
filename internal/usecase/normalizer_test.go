package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/footballer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var normalizeNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeEntry_ComputesNetPointsAndTeamValue(t *testing.T) {
	t.Parallel()

	record, _, err := NormalizeEntry(NormalizeInput{
		LeagueID: 314,
		Gameweek: 7,
		Entry:    ExternalStandingEntry{EntryID: 11, Total: 420},
		History: ExternalEntryHistory{Current: []map[string]any{
			{"event": float64(6), "points": float64(80)},
			{"event": float64(7), "points": float64(65), "event_transfers_cost": float64(8), "value": float64(1023), "bank": "15", "event_transfers": "2", "points_on_bench": "3.0", "overall_rank": float64(120000)},
		}},
		Picks: picksWithCaptain(300),
		Catalog: footballer.Index{
			300: "Haaland",
			301: "Salah",
		},
		Now: normalizeNow,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(65), record.Points)
	assert.Equal(t, int64(57), record.PointsNet)
	assert.Equal(t, int64(1023), record.TeamValue)
	assert.Equal(t, int64(15), record.Bank)
	assert.Equal(t, int64(2), record.Transfers)
	assert.Equal(t, int64(3), record.PointsOnBench)
	assert.Equal(t, int64(120000), record.OverallRank)
	assert.Equal(t, int64(420), record.TotalPoints)
	require.NotNil(t, record.CaptainID)
	assert.Equal(t, int64(300), *record.CaptainID)
	assert.Equal(t, "Haaland", *record.CaptainName)
	require.NotNil(t, record.ViceCaptainID)
	assert.Equal(t, "Salah", *record.ViceCaptainName)
	assert.Equal(t, normalizeNow, record.UpdatedAt)
}

func TestNormalizeEntry_MissingGameweekRowDefaultsToZero(t *testing.T) {
	t.Parallel()

	record, _, err := NormalizeEntry(NormalizeInput{
		LeagueID: 1,
		Gameweek: 9,
		Entry:    ExternalStandingEntry{EntryID: 2},
		History:  historyFor(8, 50, 4),
		Now:      normalizeNow,
	})
	require.NoError(t, err)

	assert.Zero(t, record.Points)
	assert.Zero(t, record.PointsNet)
	assert.Zero(t, record.TeamValue)
	assert.Nil(t, record.CaptainID)
	assert.Equal(t, gameweek.UnknownPlayerName, *record.CaptainName)
}

func TestNormalizeEntry_CaptainResolution(t *testing.T) {
	t.Parallel()

	catalog := footballer.Index{10: "Palmer"}
	cases := []struct {
		name     string
		picks    []map[string]any
		wantID   *int64
		wantName string
	}{
		{
			name:     "no captain flagged",
			picks:    []map[string]any{{"element": float64(10), "is_captain": false}},
			wantName: gameweek.UnknownPlayerName,
		},
		{
			name: "two captains flagged",
			picks: []map[string]any{
				{"element": float64(10), "is_captain": true},
				{"element": float64(11), "is_captain": true},
			},
			wantName: gameweek.UnknownPlayerName,
		},
		{
			name:     "catalog miss keeps id",
			picks:    []map[string]any{{"element": float64(99), "is_captain": true}},
			wantID:   int64Ptr(99),
			wantName: gameweek.UnknownPlayerName,
		},
		{
			name:     "resolved",
			picks:    []map[string]any{{"element": "10", "is_captain": true}},
			wantID:   int64Ptr(10),
			wantName: "Palmer",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			record, _, err := NormalizeEntry(NormalizeInput{
				LeagueID: 1,
				Gameweek: 3,
				Entry:    ExternalStandingEntry{EntryID: 5},
				History:  historyFor(3, 40, 0),
				Picks:    ExternalEntryPicks{Picks: tc.picks},
				Catalog:  catalog,
				Now:      normalizeNow,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, record.CaptainID)
			require.NotNil(t, record.CaptainName)
			assert.Equal(t, tc.wantName, *record.CaptainName)
		})
	}
}

func TestNormalizeEntry_RejectsMissingIdentity(t *testing.T) {
	t.Parallel()

	_, _, err := NormalizeEntry(NormalizeInput{
		LeagueID: 0,
		Gameweek: 1,
		Entry:    ExternalStandingEntry{EntryID: 5},
		History:  historyFor(1, 10, 0),
	})
	if !errors.Is(err, ErrRecordRejected) {
		t.Fatalf("expected ErrRecordRejected, got %v", err)
	}
}

func TestNormalizeEntry_EmptyHistoryFails(t *testing.T) {
	t.Parallel()

	_, _, err := NormalizeEntry(NormalizeInput{
		LeagueID: 1,
		Gameweek: 1,
		Entry:    ExternalStandingEntry{EntryID: 5},
	})
	if !errors.Is(err, ErrEntryHistoryMissing) {
		t.Fatalf("expected ErrEntryHistoryMissing, got %v", err)
	}
}

func TestNormalizeEntry_ChipUsageKeepsLastOccurrence(t *testing.T) {
	t.Parallel()

	history := historyFor(20, 60, 0)
	history.Chips = []map[string]any{
		{"name": "wildcard", "event": float64(4)},
		{"name": "bboost", "event": float64(9)},
		{"name": "", "event": float64(10)},
		{"name": "wildcard", "event": float64(19)},
	}

	_, chips, err := NormalizeEntry(NormalizeInput{
		LeagueID: 8,
		Gameweek: 20,
		Entry:    ExternalStandingEntry{EntryID: 77},
		History:  history,
		Now:      normalizeNow,
	})
	require.NoError(t, err)
	require.Len(t, chips, 2)

	assert.Equal(t, "wildcard", chips[0].ChipName)
	assert.Equal(t, 19, chips[0].GameweekUsed)
	assert.Equal(t, "bboost", chips[1].ChipName)
	assert.Equal(t, 9, chips[1].GameweekUsed)
	for _, chip := range chips {
		assert.Equal(t, int64(8), chip.LeagueID)
		assert.Equal(t, int64(77), chip.EntryID)
	}
}

func TestNormalizeChipState(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want *string
	}{
		{name: "bare", in: "3xc", want: strPtr("3xc")},
		{name: "single element list", in: []any{"wildcard"}, want: strPtr("wildcard")},
		{name: "string list", in: []string{"bboost"}, want: strPtr("bboost")},
		{name: "empty list", in: []any{}, want: nil},
		{name: "null", in: nil, want: nil},
		{name: "empty string", in: "", want: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizeChipState(tc.in))
		})
	}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
