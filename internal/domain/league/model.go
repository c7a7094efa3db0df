package league

import (
	"fmt"
	"time"
)

// League is an FPL classic mini-league tracked by the service.
type League struct {
	ID        int64
	Name      string
	UpdatedAt time.Time
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id must be greater than zero")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// FallbackName is used when the upstream payload carries no league name.
func FallbackName(leagueID int64) string {
	return fmt.Sprintf("League %d", leagueID)
}
