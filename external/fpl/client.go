package fpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/convert"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/logging"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/resilience"
	"github.com/riskibarqy/fpl-league-sync/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL           = "https://fantasy.premierleague.com/api"
	defaultMaxAttempts       = 3
	defaultRetryDelay        = time.Second
	defaultTimeout           = 10 * time.Second
	defaultLargeTimeout      = 15 * time.Second
	defaultMaxStandingsPages = 20
	defaultUserAgent         = "fpl-league-sync/1.0"
	maxResponseBodySize      = 8 << 20
	fallbackGameweek         = 1
)

var errFPLTransient = crerr.New("fpl transient failure")

// RequestObserver receives one observation per upstream attempt.
type RequestObserver interface {
	ObserveUpstream(endpoint, status string, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient        *fasthttp.Client
	BaseURL           string
	MaxAttempts       int
	RetryDelay        time.Duration
	Timeout           time.Duration
	LargeTimeout      time.Duration
	MaxStandingsPages int
	Logger            *logging.Logger
	Observer          RequestObserver
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client reads the public FPL API. Every fetch degrades to an empty value
// after retries are exhausted; it never returns an error to callers.
type Client struct {
	httpClient        *fasthttp.Client
	baseURL           string
	maxAttempts       int
	retryDelay        time.Duration
	timeout           time.Duration
	largeTimeout      time.Duration
	maxStandingsPages int
	logger            *logging.Logger
	observer          RequestObserver
	breaker           *resilience.CircuitBreaker
	flight            resilience.SingleFlight
}

var _ usecase.UpstreamClient = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                defaultUserAgent,
			MaxConnsPerHost:     32,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:        httpClient,
		baseURL:           baseURL,
		maxAttempts:       positiveOr(cfg.MaxAttempts, defaultMaxAttempts),
		retryDelay:        durationOr(cfg.RetryDelay, defaultRetryDelay),
		timeout:           durationOr(cfg.Timeout, defaultTimeout),
		largeTimeout:      durationOr(cfg.LargeTimeout, defaultLargeTimeout),
		maxStandingsPages: positiveOr(cfg.MaxStandingsPages, defaultMaxStandingsPages),
		logger:            logger,
		observer:          cfg.Observer,
		breaker:           resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// OnCircuitStateChange forwards breaker transitions to fn.
func (c *Client) OnCircuitStateChange(fn func(resilience.CircuitState)) {
	c.breaker.OnStateChange(fn)
}

func (c *Client) CurrentGameweek(ctx context.Context) usecase.CurrentGameweek {
	var payload bootstrapEnvelope
	if err := c.getJSON(ctx, "bootstrap-static", "/bootstrap-static/", nil, c.timeout, &payload); err != nil {
		c.logger.WarnContext(ctx, "current gameweek unavailable, using fallback", "gameweek", fallbackGameweek, "error", err)
		return usecase.CurrentGameweek{Gameweek: fallbackGameweek, Fallback: true}
	}

	for _, event := range payload.Events {
		if event.IsCurrent && event.ID > 0 {
			return usecase.CurrentGameweek{Gameweek: event.ID}
		}
	}

	c.logger.WarnContext(ctx, "no current gameweek flagged upstream, using fallback", "gameweek", fallbackGameweek)
	return usecase.CurrentGameweek{Gameweek: fallbackGameweek, Fallback: true}
}

func (c *Client) LeagueStandings(ctx context.Context, leagueID int64) usecase.ExternalLeagueStandings {
	out := usecase.ExternalLeagueStandings{LeagueID: leagueID}
	if leagueID <= 0 {
		return out
	}

	path := "/leagues-classic/" + strconv.FormatInt(leagueID, 10) + "/standings/"
	for page := 1; page <= c.maxStandingsPages; page++ {
		var query map[string]string
		if page > 1 {
			query = map[string]string{"page_standings": strconv.Itoa(page)}
		}

		var payload standingsEnvelope
		if err := c.getJSON(ctx, "league-standings", path, query, c.largeTimeout, &payload); err != nil {
			c.logger.WarnContext(ctx, "fetch league standings page failed", "league_id", leagueID, "page", page, "error", err)
			break
		}

		if out.Name == "" {
			out.Name = strings.TrimSpace(payload.League.Name)
		}
		for _, row := range payload.Standings.Results {
			entryID := convert.Int(row["entry"], 0)
			if entryID == 0 {
				continue
			}
			out.Entries = append(out.Entries, usecase.ExternalStandingEntry{
				EntryID:    entryID,
				PlayerName: convert.String(row["player_name"], ""),
				EntryName:  convert.String(row["entry_name"], ""),
				Total:      convert.Int(row["total"], 0),
				Rank:       convert.Int(row["rank"], 0),
			})
		}

		if !payload.Standings.HasNext {
			break
		}
		if page == c.maxStandingsPages {
			c.logger.WarnContext(ctx, "league standings truncated at page limit", "league_id", leagueID, "pages", page)
		}
	}

	return out
}

func (c *Client) FootballerCatalog(ctx context.Context) []usecase.ExternalFootballer {
	var payload bootstrapEnvelope
	if err := c.getJSON(ctx, "bootstrap-static", "/bootstrap-static/", nil, c.largeTimeout, &payload); err != nil {
		c.logger.WarnContext(ctx, "fetch footballer catalog failed", "error", err)
		return nil
	}

	out := make([]usecase.ExternalFootballer, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		id := convert.Int(element["id"], 0)
		if id <= 0 {
			continue
		}
		out = append(out, usecase.ExternalFootballer{
			ID:                id,
			FirstName:         convert.String(element["first_name"], ""),
			SecondName:        convert.String(element["second_name"], ""),
			WebName:           convert.String(element["web_name"], ""),
			TeamID:            convert.OptionalInt(element["team"]),
			ElementType:       convert.OptionalInt(element["element_type"]),
			NowCost:           convert.OptionalInt(element["now_cost"]),
			TotalPoints:       convert.Int(element["total_points"], 0),
			Form:              convert.OptionalFloat(element["form"]),
			SelectedByPercent: convert.OptionalFloat(element["selected_by_percent"]),
		})
	}
	return out
}

func (c *Client) EntryHistory(ctx context.Context, entryID int64) usecase.ExternalEntryHistory {
	if entryID <= 0 {
		return usecase.ExternalEntryHistory{}
	}

	var payload historyEnvelope
	path := "/entry/" + strconv.FormatInt(entryID, 10) + "/history/"
	if err := c.getJSON(ctx, "entry-history", path, nil, c.timeout, &payload); err != nil {
		c.logger.WarnContext(ctx, "fetch entry history failed", "entry_id", entryID, "error", err)
		return usecase.ExternalEntryHistory{}
	}
	return usecase.ExternalEntryHistory{Current: payload.Current, Chips: payload.Chips}
}

func (c *Client) EntryPicks(ctx context.Context, entryID int64, gameweek int) usecase.ExternalEntryPicks {
	if entryID <= 0 || gameweek <= 0 {
		return usecase.ExternalEntryPicks{}
	}

	var payload picksEnvelope
	path := "/entry/" + strconv.FormatInt(entryID, 10) + "/event/" + strconv.Itoa(gameweek) + "/picks/"
	if err := c.getJSON(ctx, "entry-picks", path, nil, c.timeout, &payload); err != nil {
		c.logger.WarnContext(ctx, "fetch entry picks failed", "entry_id", entryID, "gameweek", gameweek, "error", err)
		return usecase.ExternalEntryPicks{}
	}
	return usecase.ExternalEntryPicks{Picks: payload.Picks, ActiveChip: payload.ActiveChip}
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, query map[string]string, timeout time.Duration, target any) error {
	fullURL := c.buildURL(path, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: fpl api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		raw, reqErr := c.executeRequest(ctx, endpoint, fullURL, timeout)
		c.breaker.Report(reqErr == nil || !isCircuitFailure(reqErr))
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fpl payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, endpoint, fullURL string, timeout time.Duration) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		startedAt := time.Now()
		raw, status, err := c.doOnce(ctx, fullURL, timeout)
		c.observe(endpoint, status, err, time.Since(startedAt))
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: fpl status=%d body=%s", errFPLTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("fpl status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxAttempts-1 {
			break
		}
		backoff := c.retryDelay * time.Duration(attempt+1)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("fpl request failed")
	}
	c.logger.WarnContext(ctx, "fpl request exhausted retries", "url", fullURL, "attempts", c.maxAttempts, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string, timeout time.Duration) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func (c *Client) observe(endpoint string, status int, err error, elapsed time.Duration) {
	if c.observer == nil {
		return
	}
	label := strconv.Itoa(status)
	switch {
	case stderrors.Is(err, fasthttp.ErrTimeout):
		label = "timeout"
	case err != nil:
		label = "error"
	}
	c.observer.ObserveUpstream(endpoint, label, elapsed)
}

func (c *Client) buildURL(path string, query map[string]string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		args := fasthttp.AcquireArgs()
		defer fasthttp.ReleaseArgs(args)
		for _, key := range keys {
			args.Add(key, query[key])
		}
		_ = buf.WriteByte('?')
		_, _ = buf.Write(args.QueryString())
	}
	return buf.String()
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusRequestTimeout ||
		code == fasthttp.StatusTooManyRequests ||
		code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func durationOr(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}
