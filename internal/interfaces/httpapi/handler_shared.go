package httpapi

import (
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/standing"
	"github.com/riskibarqy/fpl-league-sync/internal/usecase"
)

type healthDTO struct {
	Status          string    `json:"status"`
	Database        string    `json:"database"`
	CurrentGameweek int       `json:"currentGameweek"`
	GameweekSource  string    `json:"gameweekSource"`
	Timestamp       time.Time `json:"timestamp"`
}

type currentGameweekDTO struct {
	CurrentGameweek int       `json:"currentGameweek"`
	Source          string    `json:"source"`
	Timestamp       time.Time `json:"timestamp"`
}

type collectionResultDTO struct {
	LeagueID         int64      `json:"leagueId"`
	LeagueName       string     `json:"leagueName"`
	Gameweek         int        `json:"gameweek"`
	GameweekFallback bool       `json:"gameweekFallback"`
	Outcome          string     `json:"outcome"`
	PlayersProcessed int        `json:"playersProcessed"`
	ChipsProcessed   int        `json:"chipsProcessed"`
	Succeeded        int        `json:"succeeded"`
	Failed           int        `json:"failed"`
	Timestamp        *time.Time `json:"timestamp,omitempty"`
}

type collectionRunDTO struct {
	RunID      string               `json:"runId"`
	LeagueID   int64                `json:"leagueId"`
	Status     string               `json:"status"`
	Result     *collectionResultDTO `json:"result,omitempty"`
	Error      string               `json:"error,omitempty"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt *time.Time           `json:"finishedAt,omitempty"`
}

type selectionDTO struct {
	Gameweek int    `json:"gameweek"`
	Source   string `json:"source"`
}

type standingRowDTO struct {
	Position        int     `json:"position"`
	EntryID         int64   `json:"entryId"`
	PlayerName      string  `json:"playerName"`
	TeamName        string  `json:"teamName"`
	GameweekPoints  int64   `json:"gameweekPoints"`
	TotalPoints     int64   `json:"totalPoints"`
	TransfersCost   int64   `json:"transfersCost"`
	PointsOnBench   int64   `json:"pointsOnBench"`
	CaptainName     *string `json:"captainName"`
	ViceCaptainName *string `json:"viceCaptainName"`
	ActiveChip      *string `json:"activeChip"`
}

type standingsDTO struct {
	LeagueID  int64            `json:"leagueId"`
	Gameweek  selectionDTO     `json:"gameweek"`
	Standings []standingRowDTO `json:"standings"`
}

type captainStatDTO struct {
	CaptainID        int64   `json:"captainId"`
	CaptainName      string  `json:"captainName"`
	TimesCaptained   int     `json:"timesCaptained"`
	TotalPoints      int64   `json:"totalPoints"`
	AveragePoints    float64 `json:"averagePoints"`
	BestPerformance  int64   `json:"bestPerformance"`
	WorstPerformance int64   `json:"worstPerformance"`
}

type captainPickDTO struct {
	EntryID        int64  `json:"entryId"`
	CaptainName    string `json:"captainName"`
	GameweekPoints int64  `json:"gameweekPoints"`
}

type captainAnalysisDTO struct {
	LeagueID        int64            `json:"leagueId"`
	Captains        []captainStatDTO `json:"captains"`
	LatestGameweek  int              `json:"latestGameweek"`
	LatestPicks     []captainPickDTO `json:"latestPicks"`
	MostPopular     *captainStatDTO  `json:"mostPopular,omitempty"`
	HighestAverage  *captainStatDTO  `json:"highestAverage,omitempty"`
	TotalSelections int              `json:"totalSelections"`
}

type chipPlayDTO struct {
	EntryID  int64 `json:"entryId"`
	Gameweek int   `json:"gameweek"`
}

type chipSummaryDTO struct {
	ChipName string        `json:"chipName"`
	Count    int           `json:"count"`
	Plays    []chipPlayDTO `json:"plays"`
}

type leagueSummaryDTO struct {
	LeagueID     int64           `json:"leagueId"`
	LeagueName   string          `json:"leagueName"`
	Gameweek     selectionDTO    `json:"gameweek"`
	ManagerCount int             `json:"managerCount"`
	Leader       *standingRowDTO `json:"leader,omitempty"`
	TopCaptain   *captainStatDTO `json:"topCaptain,omitempty"`
	ChipCounts   map[string]int  `json:"chipCounts"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

type playerGameweekDTO struct {
	LeagueID      int64   `json:"leagueId"`
	Gameweek      int     `json:"gameweek"`
	Points        int64   `json:"points"`
	TotalPoints   int64   `json:"totalPoints"`
	PointsNet     int64   `json:"pointsNet"`
	Bank          int64   `json:"bank"`
	TeamValue     float64 `json:"teamValue"`
	Transfers     int64   `json:"transfers"`
	TransfersCost int64   `json:"transfersCost"`
	PointsOnBench int64   `json:"pointsOnBench"`
	OverallRank   int64   `json:"overallRank"`
	CaptainName   *string `json:"captainName"`
	ActiveChip    *string `json:"activeChip"`
}

type playerHistoryDTO struct {
	EntryID        int64               `json:"entryId"`
	TotalGameweeks int                 `json:"totalGameweeks"`
	History        []playerGameweekDTO `json:"history"`
}

type leagueTrendDTO struct {
	LeagueID           int64   `json:"leagueId"`
	LeagueName         string  `json:"leagueName"`
	TotalGameweeks     int     `json:"totalGameweeks"`
	BestGameweekPoints int64   `json:"bestGameweekPoints"`
	AveragePoints      float64 `json:"averagePoints"`
	LatestTotalPoints  int64   `json:"latestTotalPoints"`
	LatestGameweek     int     `json:"latestGameweek"`
}

type playerTrendsDTO struct {
	EntryID int64            `json:"entryId"`
	Leagues []leagueTrendDTO `json:"leagues"`
}

func collectionResultToDTO(result usecase.CollectionResult, at time.Time) collectionResultDTO {
	out := collectionResultDTO{
		LeagueID:         result.LeagueID,
		LeagueName:       result.LeagueName,
		Gameweek:         result.Gameweek,
		GameweekFallback: result.GameweekFallback,
		Outcome:          result.Outcome(),
		PlayersProcessed: result.Records,
		ChipsProcessed:   result.Chips,
		Succeeded:        result.Succeeded,
		Failed:           result.Failed,
	}
	if !at.IsZero() {
		stamp := at.UTC()
		out.Timestamp = &stamp
	}
	return out
}

func collectionRunToDTO(run usecase.CollectionRun) collectionRunDTO {
	out := collectionRunDTO{
		RunID:      run.RunID,
		LeagueID:   run.LeagueID,
		Status:     run.Status,
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
	if run.Result != nil {
		result := collectionResultToDTO(*run.Result, time.Time{})
		out.Result = &result
	}
	return out
}

func selectionToDTO(selection usecase.GameweekSelection) selectionDTO {
	return selectionDTO{Gameweek: selection.Gameweek, Source: selection.Source}
}

func standingRowToDTO(row standing.Row) standingRowDTO {
	return standingRowDTO{
		Position:        row.Position,
		EntryID:         row.EntryID,
		PlayerName:      row.PlayerName,
		TeamName:        row.TeamName,
		GameweekPoints:  row.GameweekPoints,
		TotalPoints:     row.TotalPoints,
		TransfersCost:   row.TransfersCost,
		PointsOnBench:   row.PointsOnBench,
		CaptainName:     row.CaptainName,
		ViceCaptainName: row.ViceCaptainName,
		ActiveChip:      row.ActiveChip,
	}
}

func standingsToDTO(table usecase.LeagueStandings) standingsDTO {
	rows := make([]standingRowDTO, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, standingRowToDTO(row))
	}
	return standingsDTO{
		LeagueID:  table.LeagueID,
		Gameweek:  selectionToDTO(table.Selection),
		Standings: rows,
	}
}

func captainStatToDTO(stat standing.CaptainStat) captainStatDTO {
	return captainStatDTO{
		CaptainID:        stat.CaptainID,
		CaptainName:      stat.CaptainName,
		TimesCaptained:   stat.TimesCaptained,
		TotalPoints:      stat.TotalPoints,
		AveragePoints:    stat.AveragePoints,
		BestPerformance:  stat.BestPerformance,
		WorstPerformance: stat.WorstPerformance,
	}
}

func captainStatPtrToDTO(stat *standing.CaptainStat) *captainStatDTO {
	if stat == nil {
		return nil
	}
	out := captainStatToDTO(*stat)
	return &out
}

func captainAnalysisToDTO(analysis usecase.CaptainAnalysis) captainAnalysisDTO {
	captains := make([]captainStatDTO, 0, len(analysis.Captains))
	for _, stat := range analysis.Captains {
		captains = append(captains, captainStatToDTO(stat))
	}
	picks := make([]captainPickDTO, 0, len(analysis.LatestPicks))
	for _, pick := range analysis.LatestPicks {
		picks = append(picks, captainPickDTO{
			EntryID:        pick.EntryID,
			CaptainName:    pick.CaptainName,
			GameweekPoints: pick.GameweekPoints,
		})
	}

	return captainAnalysisDTO{
		LeagueID:        analysis.LeagueID,
		Captains:        captains,
		LatestGameweek:  analysis.LatestGameweek,
		LatestPicks:     picks,
		MostPopular:     captainStatPtrToDTO(analysis.MostPopular),
		HighestAverage:  captainStatPtrToDTO(analysis.HighestAverage),
		TotalSelections: analysis.TotalSelections,
	}
}

func chipSummaryToDTO(chip usecase.ChipSummary) chipSummaryDTO {
	plays := make([]chipPlayDTO, 0, len(chip.Plays))
	for _, play := range chip.Plays {
		plays = append(plays, chipPlayDTO{EntryID: play.EntryID, Gameweek: play.Gameweek})
	}
	return chipSummaryDTO{
		ChipName: chip.ChipName,
		Count:    chip.Count,
		Plays:    plays,
	}
}

func leagueSummaryToDTO(summary usecase.LeagueSummary) leagueSummaryDTO {
	out := leagueSummaryDTO{
		LeagueID:     summary.League.ID,
		LeagueName:   summary.League.Name,
		Gameweek:     selectionToDTO(summary.Selection),
		ManagerCount: summary.ManagerCount,
		TopCaptain:   captainStatPtrToDTO(summary.TopCaptain),
		ChipCounts:   summary.ChipCounts,
		LastUpdated:  summary.League.UpdatedAt,
	}
	if out.ChipCounts == nil {
		out.ChipCounts = map[string]int{}
	}
	if summary.Leader != nil {
		leader := standingRowToDTO(*summary.Leader)
		out.Leader = &leader
	}
	return out
}

func playerGameweekToDTO(item usecase.PlayerGameweek) playerGameweekDTO {
	return playerGameweekDTO{
		LeagueID:      item.LeagueID,
		Gameweek:      item.Gameweek,
		Points:        item.Points,
		TotalPoints:   item.TotalPoints,
		PointsNet:     item.PointsNet,
		Bank:          item.Bank,
		TeamValue:     item.TeamValue,
		Transfers:     item.Transfers,
		TransfersCost: item.TransfersCost,
		PointsOnBench: item.PointsOnBench,
		OverallRank:   item.OverallRank,
		CaptainName:   item.CaptainName,
		ActiveChip:    item.ActiveChip,
	}
}

func leagueTrendToDTO(item usecase.LeagueTrend) leagueTrendDTO {
	return leagueTrendDTO{
		LeagueID:           item.LeagueID,
		LeagueName:         item.LeagueName,
		TotalGameweeks:     item.TotalGameweeks,
		BestGameweekPoints: item.BestGameweekPoints,
		AveragePoints:      item.AveragePoints,
		LatestTotalPoints:  item.LatestTotalPoints,
		LatestGameweek:     item.LatestGameweek,
	}
}
