package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/footballer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/globalplayer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/league"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/membership"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/upsert"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
)

const DefaultEntryPause = 100 * time.Millisecond

const (
	CollectionOutcomeCompleted = "completed"
	CollectionOutcomeNoData    = "no_data"
	CollectionOutcomeFailed    = "failed"
)

// CollectionObserver receives one observation per finished run.
type CollectionObserver interface {
	ObserveCollection(outcome string, elapsed time.Duration, succeeded, failed int)
}

type CollectionConfig struct {
	EntryPause time.Duration
	Logger     *logging.Logger
	Observer   CollectionObserver
	// OnCompleted runs after a run stored at least one record.
	OnCompleted func(ctx context.Context, result CollectionResult)
	// Sleep and Now are replaceable for tests.
	Sleep func(ctx context.Context, d time.Duration)
	Now   func() time.Time
}

type CollectionResult struct {
	LeagueID         int64
	LeagueName       string
	Gameweek         int
	GameweekFallback bool
	NoData           bool
	Records          int
	Chips            int
	Succeeded        int
	Failed           int
}

func (r CollectionResult) Outcome() string {
	if r.NoData {
		return CollectionOutcomeNoData
	}
	return CollectionOutcomeCompleted
}

// CollectionService runs the reconciliation pipeline for one league at a
// time. Stages are strictly sequential so dimension rows always land before
// the fact rows that reference them.
type CollectionService struct {
	upstream       UpstreamClient
	leagueRepo     league.Repository
	playerRepo     globalplayer.Repository
	membershipRepo membership.Repository
	footballerRepo footballer.Repository
	gameweekRepo   gameweek.Repository
	cfg            CollectionConfig
	logger         *logging.Logger
}

func NewCollectionService(
	upstream UpstreamClient,
	leagueRepo league.Repository,
	playerRepo globalplayer.Repository,
	membershipRepo membership.Repository,
	footballerRepo footballer.Repository,
	gameweekRepo gameweek.Repository,
	cfg CollectionConfig,
) *CollectionService {
	if cfg.EntryPause < 0 {
		cfg.EntryPause = 0
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &CollectionService{
		upstream:       upstream,
		leagueRepo:     leagueRepo,
		playerRepo:     playerRepo,
		membershipRepo: membershipRepo,
		footballerRepo: footballerRepo,
		gameweekRepo:   gameweekRepo,
		cfg:            cfg,
		logger:         logger.Named("collector"),
	}
}

func (s *CollectionService) Run(ctx context.Context, leagueID int64) (CollectionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.Run", leagueAttr(leagueID))
	defer span.End()

	if leagueID <= 0 {
		return CollectionResult{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	startedAt := time.Now()
	result, err := s.run(ctx, leagueID)
	outcome := result.Outcome()
	if err != nil {
		outcome = CollectionOutcomeFailed
		s.logger.ErrorContext(ctx, "league collection failed", "league_id", leagueID, "error", err)
	} else {
		s.logger.InfoContext(ctx, "league collection finished",
			"league_id", leagueID,
			"gameweek", result.Gameweek,
			"outcome", outcome,
			"records", result.Records,
			"chips", result.Chips,
			"succeeded", result.Succeeded,
			"failed", result.Failed,
		)
	}
	if s.cfg.Observer != nil {
		s.cfg.Observer.ObserveCollection(outcome, time.Since(startedAt), result.Succeeded, result.Failed)
	}
	if err == nil && result.Records > 0 && s.cfg.OnCompleted != nil {
		s.cfg.OnCompleted(ctx, result)
	}

	return result, err
}

func (s *CollectionService) run(ctx context.Context, leagueID int64) (CollectionResult, error) {
	now := s.cfg.Now()
	current := s.upstream.CurrentGameweek(ctx)
	result := CollectionResult{
		LeagueID:         leagueID,
		Gameweek:         current.Gameweek,
		GameweekFallback: current.Fallback,
	}

	standings := s.upstream.LeagueStandings(ctx, leagueID)
	if standings.Empty() {
		s.logger.WarnContext(ctx, "league standings empty, nothing to collect", "league_id", leagueID)
		result.NoData = true
		return result, nil
	}

	leagueName := strings.TrimSpace(standings.Name)
	if leagueName == "" {
		leagueName = league.FallbackName(leagueID)
	}
	result.LeagueName = leagueName

	if err := s.leagueRepo.Upsert(ctx, league.League{ID: leagueID, Name: leagueName, UpdatedAt: now}); err != nil {
		return result, fmt.Errorf("%w: upsert league: %v", ErrPrerequisiteFailed, err)
	}

	entries := uniqueEntries(standings.Entries)
	if dropped := len(standings.Entries) - len(entries); dropped > 0 {
		s.logger.WarnContext(ctx, "standings repeated entries across pages", "league_id", leagueID, "dropped", dropped)
	}

	storedPlayers := s.storePlayers(ctx, entries, now)
	if len(storedPlayers) == 0 {
		return result, fmt.Errorf("%w: no global players stored for league=%d", ErrPrerequisiteFailed, leagueID)
	}

	s.storeMemberships(ctx, leagueID, entries, storedPlayers, now)
	catalog := s.refreshCatalog(ctx, now)

	records := make([]gameweek.Record, 0, len(entries))
	chips := make([]gameweek.ChipUsage, 0)
	for _, entry := range entries {
		if _, ok := storedPlayers[entry.EntryID]; !ok {
			result.Failed++
			s.logger.WarnContext(ctx, "skip entry without stored player", "league_id", leagueID, "entry_id", entry.EntryID)
			continue
		}

		record, usages, err := s.collectEntry(ctx, leagueID, current.Gameweek, entry, catalog, now)
		if err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "collect entry failed", "league_id", leagueID, "entry_id", entry.EntryID, "error", err)
		} else {
			records = append(records, record)
			chips = append(chips, usages...)
			result.Succeeded++
		}

		if s.cfg.EntryPause > 0 {
			s.cfg.Sleep(ctx, s.cfg.EntryPause)
		}
	}

	if len(records) > 0 {
		if err := s.gameweekRepo.UpsertRecords(ctx, records); err != nil {
			return result, fmt.Errorf("upsert gameweek records: %w", err)
		}
		result.Records = len(records)
	}
	if len(chips) > 0 {
		if err := s.gameweekRepo.UpsertChipUsages(ctx, chips); err != nil {
			return result, fmt.Errorf("upsert chip usages: %w", err)
		}
		result.Chips = len(chips)
	}

	return result, nil
}

// collectEntry fetches and normalizes one entry. Picks are only requested
// once the entry has a history to attach them to.
func (s *CollectionService) collectEntry(ctx context.Context, leagueID int64, gw int, entry ExternalStandingEntry, catalog footballer.Index, now time.Time) (gameweek.Record, []gameweek.ChipUsage, error) {
	history := s.upstream.EntryHistory(ctx, entry.EntryID)
	if history.Empty() {
		return gameweek.Record{}, nil, fmt.Errorf("%w: entry_id=%d", ErrEntryHistoryMissing, entry.EntryID)
	}
	return NormalizeEntry(NormalizeInput{
		LeagueID: leagueID,
		Gameweek: gw,
		Entry:    entry,
		History:  history,
		Picks:    s.upstream.EntryPicks(ctx, entry.EntryID, gw),
		Catalog:  catalog,
		Now:      now,
	})
}

// uniqueEntries keeps the first row per entry id. Standings pages can shift
// while they are fetched and repeat an entry.
func uniqueEntries(entries []ExternalStandingEntry) []ExternalStandingEntry {
	seen := make(map[int64]struct{}, len(entries))
	out := make([]ExternalStandingEntry, 0, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.EntryID]; dup {
			continue
		}
		seen[entry.EntryID] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// storePlayers returns the set of entry ids whose global player row exists
// after this stage.
func (s *CollectionService) storePlayers(ctx context.Context, entries []ExternalStandingEntry, now time.Time) map[int64]struct{} {
	items := make([]globalplayer.Player, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		if entry.EntryID == 0 {
			continue
		}
		if _, dup := seen[entry.EntryID]; dup {
			continue
		}
		seen[entry.EntryID] = struct{}{}
		items = append(items, globalplayer.Player{
			EntryID:         entry.EntryID,
			PlayerName:      entry.PlayerName,
			CurrentTeamName: entry.EntryName,
			LastUpdated:     now,
		})
	}

	err := s.playerRepo.UpsertBulk(ctx, items)
	if err == nil {
		return seen
	}
	s.logger.WarnContext(ctx, "bulk upsert global players failed, retrying one by one", "count", len(items), "error", err)

	stored := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if err := upsertIndividually(ctx, item, s.playerRepo.Insert, s.playerRepo.Update); err != nil {
			s.logger.WarnContext(ctx, "store global player failed", "entry_id", item.EntryID, "error", err)
			continue
		}
		stored[item.EntryID] = struct{}{}
	}
	return stored
}

func (s *CollectionService) storeMemberships(ctx context.Context, leagueID int64, entries []ExternalStandingEntry, storedPlayers map[int64]struct{}, now time.Time) {
	items := make([]membership.Membership, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := storedPlayers[entry.EntryID]; !ok {
			continue
		}
		if _, dup := seen[entry.EntryID]; dup {
			continue
		}
		seen[entry.EntryID] = struct{}{}
		items = append(items, membership.Membership{
			LeagueID:   leagueID,
			EntryID:    entry.EntryID,
			TeamName:   entry.EntryName,
			LastActive: now,
		})
	}

	err := s.membershipRepo.UpsertBulk(ctx, items)
	if err == nil {
		return
	}
	s.logger.WarnContext(ctx, "bulk upsert memberships failed, retrying one by one", "league_id", leagueID, "error", err)

	for _, item := range items {
		if err := upsertIndividually(ctx, item, s.membershipRepo.Insert, s.membershipRepo.Update); err != nil {
			s.logger.WarnContext(ctx, "store membership failed", "league_id", leagueID, "entry_id", item.EntryID, "error", err)
		}
	}
}

func (s *CollectionService) refreshCatalog(ctx context.Context, now time.Time) footballer.Index {
	external := s.upstream.FootballerCatalog(ctx)
	if len(external) == 0 {
		s.logger.WarnContext(ctx, "footballer catalog empty, captain names will be unknown")
		return nil
	}

	items := make([]footballer.Footballer, 0, len(external))
	for _, item := range external {
		items = append(items, footballer.Footballer{
			ID:                item.ID,
			FirstName:         item.FirstName,
			SecondName:        item.SecondName,
			WebName:           item.WebName,
			TeamID:            item.TeamID,
			ElementType:       item.ElementType,
			NowCost:           item.NowCost,
			TotalPoints:       item.TotalPoints,
			Form:              item.Form,
			SelectedByPercent: item.SelectedByPercent,
			UpdatedAt:         now,
		})
	}
	if err := s.footballerRepo.UpsertBulk(ctx, items); err != nil {
		s.logger.WarnContext(ctx, "store footballer catalog failed", "count", len(items), "error", err)
	}

	return footballer.NewIndex(items)
}

// upsertIndividually inserts item and falls back to update-by-key when the
// row already exists.
func upsertIndividually[T any](
	ctx context.Context,
	item T,
	insert func(context.Context, T) upsert.Result,
	update func(context.Context, T) error,
) error {
	res := insert(ctx, item)
	switch {
	case res.IsCreated():
		return nil
	case res.IsAlreadyExists():
		if err := update(ctx, item); err != nil {
			return fmt.Errorf("update existing row: %w", err)
		}
		return nil
	default:
		if res.Err != nil {
			return res.Err
		}
		return errors.New("insert failed")
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
