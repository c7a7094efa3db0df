package membership

import "time"

// Membership is one entry's participation in one league. LastActive is
// advisory and only tracks when the entry was last seen in standings.
type Membership struct {
	LeagueID   int64
	EntryID    int64
	TeamName   string
	LastActive time.Time
}
