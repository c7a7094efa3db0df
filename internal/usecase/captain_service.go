package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/standing"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

type CaptainPick struct {
	EntryID        int64
	CaptainName    string
	GameweekPoints int64
}

type CaptainAnalysis struct {
	LeagueID        int64
	Captains        []standing.CaptainStat
	LatestGameweek  int
	LatestPicks     []CaptainPick
	MostPopular     *standing.CaptainStat
	HighestAverage  *standing.CaptainStat
	TotalSelections int
}

type CaptainService struct {
	viewReader   standing.ViewReader
	gameweekRepo gameweek.Repository
	logger       *logging.Logger
}

func NewCaptainService(viewReader standing.ViewReader, gameweekRepo gameweek.Repository, logger *logging.Logger) *CaptainService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CaptainService{
		viewReader:   viewReader,
		gameweekRepo: gameweekRepo,
		logger:       logger,
	}
}

func (s *CaptainService) Analyze(ctx context.Context, leagueID int64) (CaptainAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CaptainService.Analyze", leagueAttr(leagueID))
	defer span.End()

	if leagueID <= 0 {
		return CaptainAnalysis{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	records, err := s.gameweekRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return CaptainAnalysis{}, fmt.Errorf("list gameweek records: %w", err)
	}

	stats, err := s.viewReader.ListCaptainStats(ctx, leagueID)
	if err != nil {
		s.logger.WarnContext(ctx, "captain view failed, aggregating in app", "league_id", leagueID, "error", err)
		stats = AggregateCaptainStats(records)
	}
	sortCaptainStats(stats)
	if len(stats) == 0 {
		return CaptainAnalysis{}, fmt.Errorf("%w: no captain data for league=%d, run collection first", ErrNotFound, leagueID)
	}

	out := CaptainAnalysis{
		LeagueID: leagueID,
		Captains: stats,
	}
	for _, stat := range stats {
		out.TotalSelections += stat.TimesCaptained
	}
	out.MostPopular = &stats[0]
	best := 0
	for i := range stats {
		if stats[i].AveragePoints > stats[best].AveragePoints {
			best = i
		}
	}
	out.HighestAverage = &stats[best]
	out.LatestGameweek, out.LatestPicks = latestCaptainPicks(records)

	return out, nil
}

// AggregateCaptainStats mirrors captain_analysis_view: only records with a
// resolved captain count, averages are rounded to one decimal.
func AggregateCaptainStats(records []gameweek.Record) []standing.CaptainStat {
	byCaptain := make(map[int64]*standing.CaptainStat)
	order := make([]int64, 0)
	for _, record := range records {
		if record.CaptainID == nil || record.CaptainName == nil {
			continue
		}
		id := *record.CaptainID
		stat, ok := byCaptain[id]
		if !ok {
			stat = &standing.CaptainStat{
				CaptainID:        id,
				CaptainName:      *record.CaptainName,
				BestPerformance:  record.Points,
				WorstPerformance: record.Points,
			}
			byCaptain[id] = stat
			order = append(order, id)
		}
		stat.TimesCaptained++
		stat.TotalPoints += record.Points
		stat.BestPerformance = max(stat.BestPerformance, record.Points)
		stat.WorstPerformance = min(stat.WorstPerformance, record.Points)
	}

	out := make([]standing.CaptainStat, 0, len(order))
	for _, id := range order {
		stat := *byCaptain[id]
		stat.AveragePoints = roundOneDecimal(float64(stat.TotalPoints) / float64(stat.TimesCaptained))
		out = append(out, stat)
	}
	sortCaptainStats(out)
	return out
}

// sortCaptainStats orders by total points, then captain id, matching
// captain_analysis_view reads. The first entry is the most popular captain.
func sortCaptainStats(stats []standing.CaptainStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalPoints != stats[j].TotalPoints {
			return stats[i].TotalPoints > stats[j].TotalPoints
		}
		return stats[i].CaptainID < stats[j].CaptainID
	})
}

func latestCaptainPicks(records []gameweek.Record) (int, []CaptainPick) {
	latest := 0
	for _, record := range records {
		latest = max(latest, record.Gameweek)
	}
	if latest == 0 {
		return 0, nil
	}

	picks := make([]CaptainPick, 0)
	for _, record := range records {
		if record.Gameweek != latest {
			continue
		}
		name := gameweek.UnknownPlayerName
		if record.CaptainName != nil {
			name = *record.CaptainName
		}
		picks = append(picks, CaptainPick{
			EntryID:        record.EntryID,
			CaptainName:    name,
			GameweekPoints: record.Points,
		})
	}
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].GameweekPoints > picks[j].GameweekPoints
	})
	return latest, picks
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
