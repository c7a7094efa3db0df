package standing

// Row is one manager's line in a league table for a single gameweek.
type Row struct {
	LeagueID        int64
	EntryID         int64
	Gameweek        int
	Position        int
	PlayerName      string
	TeamName        string
	GameweekPoints  int64
	TotalPoints     int64
	TransfersCost   int64
	PointsOnBench   int64
	CaptainName     *string
	ViceCaptainName *string
	ActiveChip      *string
}

// CaptainStat aggregates how a footballer performed as captain in a league.
type CaptainStat struct {
	CaptainID        int64
	CaptainName      string
	TimesCaptained   int
	TotalPoints      int64
	AveragePoints    float64
	BestPerformance  int64
	WorstPerformance int64
}
