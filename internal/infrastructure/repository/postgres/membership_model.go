package postgres

import "time"

type membershipTableModel struct {
	LeagueID   int64     `db:"league_id"`
	EntryID    int64     `db:"entry_id"`
	TeamName   string    `db:"team_name"`
	JoinedAt   time.Time `db:"joined_at"`
	LastActive time.Time `db:"last_active"`
}

type membershipInsertModel struct {
	LeagueID   int64     `db:"league_id"`
	EntryID    int64     `db:"entry_id"`
	TeamName   string    `db:"team_name"`
	LastActive time.Time `db:"last_active"`
}
