package postgres

import "time"

type globalPlayerTableModel struct {
	EntryID         int64     `db:"entry_id"`
	PlayerName      string    `db:"player_name"`
	CurrentTeamName string    `db:"current_team_name"`
	FirstSeen       time.Time `db:"first_seen"`
	LastUpdated     time.Time `db:"last_updated"`
}

type globalPlayerInsertModel struct {
	EntryID         int64     `db:"entry_id"`
	PlayerName      string    `db:"player_name"`
	CurrentTeamName string    `db:"current_team_name"`
	LastUpdated     time.Time `db:"last_updated"`
}
