package globalplayer

import "time"

// Player is an FPL manager (entry), unique across every league.
type Player struct {
	EntryID         int64
	PlayerName      string
	CurrentTeamName string
	LastUpdated     time.Time
}
