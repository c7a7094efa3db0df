package postgres

import (
	"database/sql"
	"time"
)

type gameweekRecordTableModel struct {
	LeagueID        int64          `db:"league_id"`
	EntryID         int64          `db:"entry_id"`
	Gameweek        int            `db:"gameweek"`
	Points          int64          `db:"points"`
	TotalPoints     int64          `db:"total_points"`
	PointsNet       int64          `db:"points_net"`
	Bank            int64          `db:"bank"`
	TeamValue       int64          `db:"team_value"`
	Transfers       int64          `db:"transfers"`
	TransfersCost   int64          `db:"transfers_cost"`
	PointsOnBench   int64          `db:"points_on_bench"`
	OverallRank     int64          `db:"overall_rank"`
	CaptainID       sql.NullInt64  `db:"captain_id"`
	CaptainName     sql.NullString `db:"captain_name"`
	ViceCaptainID   sql.NullInt64  `db:"vice_captain_id"`
	ViceCaptainName sql.NullString `db:"vice_captain_name"`
	ActiveChip      sql.NullString `db:"active_chip"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type gameweekRecordInsertModel struct {
	LeagueID        int64     `db:"league_id"`
	EntryID         int64     `db:"entry_id"`
	Gameweek        int       `db:"gameweek"`
	Points          int64     `db:"points"`
	TotalPoints     int64     `db:"total_points"`
	PointsNet       int64     `db:"points_net"`
	Bank            int64     `db:"bank"`
	TeamValue       int64     `db:"team_value"`
	Transfers       int64     `db:"transfers"`
	TransfersCost   int64     `db:"transfers_cost"`
	PointsOnBench   int64     `db:"points_on_bench"`
	OverallRank     int64     `db:"overall_rank"`
	CaptainID       *int64    `db:"captain_id"`
	CaptainName     *string   `db:"captain_name"`
	ViceCaptainID   *int64    `db:"vice_captain_id"`
	ViceCaptainName *string   `db:"vice_captain_name"`
	ActiveChip      *string   `db:"active_chip"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type chipUsageTableModel struct {
	LeagueID     int64     `db:"league_id"`
	EntryID      int64     `db:"entry_id"`
	ChipName     string    `db:"chip_name"`
	GameweekUsed int       `db:"gameweek_used"`
	CreatedAt    time.Time `db:"created_at"`
}

type chipUsageInsertModel struct {
	LeagueID     int64     `db:"league_id"`
	EntryID      int64     `db:"entry_id"`
	ChipName     string    `db:"chip_name"`
	GameweekUsed int       `db:"gameweek_used"`
	CreatedAt    time.Time `db:"created_at"`
}
