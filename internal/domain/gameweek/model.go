package gameweek

import (
	"math"
	"time"
)

// UnknownPlayerName is stored when a captain cannot be resolved to a name.
const UnknownPlayerName = "Unknown"

// Record is one entry's result for one gameweek inside one league.
type Record struct {
	LeagueID        int64
	EntryID         int64
	Gameweek        int
	Points          int64
	TotalPoints     int64
	PointsNet       int64
	Bank            int64
	TeamValue       int64 // tenths of a million
	Transfers       int64
	TransfersCost   int64
	PointsOnBench   int64
	OverallRank     int64
	CaptainID       *int64
	CaptainName     *string
	ViceCaptainID   *int64
	ViceCaptainName *string
	ActiveChip      *string
	UpdatedAt       time.Time
}

// Key is the natural key of a Record.
type Key struct {
	LeagueID int64
	EntryID  int64
	Gameweek int
}

func (r Record) Key() Key {
	return Key{LeagueID: r.LeagueID, EntryID: r.EntryID, Gameweek: r.Gameweek}
}

// ChipUsage records the gameweek an entry played a chip. Keyed by
// (league, entry, chip name), so a chip played twice keeps one row.
type ChipUsage struct {
	LeagueID     int64
	EntryID      int64
	ChipName     string
	GameweekUsed int
	CreatedAt    time.Time
}

// ChipKey is the natural key of a ChipUsage.
type ChipKey struct {
	LeagueID int64
	EntryID  int64
	ChipName string
}

func (c ChipUsage) Key() ChipKey {
	return ChipKey{LeagueID: c.LeagueID, EntryID: c.EntryID, ChipName: c.ChipName}
}

// TeamValueFromTenths converts the upstream tenths representation to millions.
func TeamValueFromTenths(tenths int64) float64 {
	return float64(tenths) / 10
}

// TeamValueToTenths converts millions back to the persisted tenths representation.
func TeamValueToTenths(millions float64) int64 {
	return int64(math.Round(millions * 10))
}
