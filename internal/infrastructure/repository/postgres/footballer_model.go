package postgres

import "time"

type footballerInsertModel struct {
	ID                int64     `db:"id"`
	FirstName         string    `db:"first_name"`
	SecondName        string    `db:"second_name"`
	WebName           string    `db:"web_name"`
	TeamID            *int64    `db:"team_id"`
	ElementType       *int64    `db:"element_type"`
	NowCost           *int64    `db:"now_cost"`
	TotalPoints       int64     `db:"total_points"`
	Form              *float64  `db:"form"`
	SelectedByPercent *float64  `db:"selected_by_percent"`
	UpdatedAt         time.Time `db:"updated_at"`
}
