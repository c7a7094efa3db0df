package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
	"github.com/riskibarqy/fpl-league-sync/internal/usecase"
)

const healthPingTimeout = 2 * time.Second

type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type GameweekReader interface {
	Current(ctx context.Context) usecase.CurrentGameweekInfo
}

type RunQueue interface {
	Submit(ctx context.Context, leagueID int64) (usecase.CollectionRun, error)
	Status(ctx context.Context, runID string) (usecase.CollectionRun, error)
}

type StandingsReader interface {
	ListByLeague(ctx context.Context, leagueID int64, requested *int) (usecase.LeagueStandings, error)
}

type CaptainAnalyzer interface {
	Analyze(ctx context.Context, leagueID int64) (usecase.CaptainAnalysis, error)
}

type ChipReader interface {
	ListByLeague(ctx context.Context, leagueID int64) ([]usecase.ChipSummary, error)
}

type SummaryReader interface {
	Get(ctx context.Context, leagueID int64) (usecase.LeagueSummary, error)
}

type PlayerReader interface {
	History(ctx context.Context, entryID int64) ([]usecase.PlayerGameweek, error)
	Trends(ctx context.Context, entryID int64) ([]usecase.LeagueTrend, error)
}

// Dependencies groups what the handler reads from. Health may be nil, in
// which case /v1/health skips the database ping.
type Dependencies struct {
	Health    HealthChecker
	Gameweeks GameweekReader
	Collector usecase.LeagueCollector
	Runs      RunQueue
	Standings StandingsReader
	Captains  CaptainAnalyzer
	Chips     ChipReader
	Summaries SummaryReader
	Players   PlayerReader
}

type Handler struct {
	deps      Dependencies
	logger    *logging.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewHandler(deps Dependencies, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		deps:      deps,
		logger:    logger,
		validator: validator.New(),
		now:       time.Now,
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %w", usecase.ErrInvalidInput, err)
	}

	return nil
}

type leagueRequest struct {
	LeagueID int64 `validate:"gt=0"`
}

type standingsRequest struct {
	LeagueID int64 `validate:"gt=0"`
	Gameweek *int  `validate:"omitempty,min=1,max=38"`
}

type playerRequest struct {
	EntryID int64 `validate:"gt=0"`
}

type runRequest struct {
	RunID string `validate:"required,max=64"`
}

func (h *Handler) leagueRequest(r *http.Request) (leagueRequest, error) {
	leagueID, err := parsePathID(r, "leagueID")
	if err != nil {
		return leagueRequest{}, err
	}

	req := leagueRequest{LeagueID: leagueID}
	return req, h.validateRequest(r.Context(), req)
}

func (h *Handler) standingsRequest(r *http.Request) (standingsRequest, error) {
	leagueID, err := parsePathID(r, "leagueID")
	if err != nil {
		return standingsRequest{}, err
	}

	req := standingsRequest{LeagueID: leagueID}
	if raw := strings.TrimSpace(r.URL.Query().Get("gameweek")); raw != "" {
		gw, err := strconv.Atoi(raw)
		if err != nil {
			return standingsRequest{}, fmt.Errorf("%w: gameweek must be an integer", usecase.ErrInvalidInput)
		}
		req.Gameweek = &gw
	}
	return req, h.validateRequest(r.Context(), req)
}

func (h *Handler) playerRequest(r *http.Request) (playerRequest, error) {
	entryID, err := parsePathID(r, "entryID")
	if err != nil {
		return playerRequest{}, err
	}

	req := playerRequest{EntryID: entryID}
	return req, h.validateRequest(r.Context(), req)
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	database := "skipped"
	if h.deps.Health != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		err := h.deps.Health.PingContext(pingCtx)
		cancel()
		if err != nil {
			h.logger.WarnContext(ctx, "database ping failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: database disconnected", usecase.ErrDependencyUnavailable))
			return
		}
		database = "connected"
	}

	current := h.deps.Gameweeks.Current(ctx)
	writeSuccess(ctx, w, http.StatusOK, healthDTO{
		Status:          "healthy",
		Database:        database,
		CurrentGameweek: current.Gameweek,
		GameweekSource:  current.Source,
		Timestamp:       h.now().UTC(),
	})
}

func (h *Handler) CurrentGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentGameweek")
	defer span.End()

	current := h.deps.Gameweeks.Current(ctx)
	writeSuccess(ctx, w, http.StatusOK, currentGameweekDTO{
		CurrentGameweek: current.Gameweek,
		Source:          current.Source,
		Timestamp:       h.now().UTC(),
	})
}
