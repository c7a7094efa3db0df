package footballer

import "time"

// Footballer is one row of the upstream player catalog.
type Footballer struct {
	ID                int64
	FirstName         string
	SecondName        string
	WebName           string
	TeamID            *int64
	ElementType       *int64
	NowCost           *int64
	TotalPoints       int64
	Form              *float64
	SelectedByPercent *float64
	UpdatedAt         time.Time
}

// Index resolves catalog ids to display names.
type Index map[int64]string

func NewIndex(items []Footballer) Index {
	out := make(Index, len(items))
	for _, item := range items {
		if item.ID <= 0 || item.WebName == "" {
			continue
		}
		out[item.ID] = item.WebName
	}
	return out
}

// WebName returns the display name for id. A nil index never matches.
func (i Index) WebName(id int64) (string, bool) {
	if i == nil {
		return "", false
	}
	name, ok := i[id]
	return name, ok
}
