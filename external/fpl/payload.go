package fpl

type bootstrapEnvelope struct {
	Events   []bootstrapEvent `json:"events"`
	Elements []map[string]any `json:"elements"`
}

type bootstrapEvent struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
}

type standingsEnvelope struct {
	League    standingsLeague `json:"league"`
	Standings standingsPage   `json:"standings"`
}

type standingsLeague struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type standingsPage struct {
	HasNext bool             `json:"has_next"`
	Page    int              `json:"page"`
	Results []map[string]any `json:"results"`
}

type historyEnvelope struct {
	Current []map[string]any `json:"current"`
	Chips   []map[string]any `json:"chips"`
}

type picksEnvelope struct {
	Picks      []map[string]any `json:"picks"`
	ActiveChip any              `json:"active_chip"`
}
