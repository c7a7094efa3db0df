package httpapi

import "net/http"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	req, err := h.standingsRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.deps.Standings.ListByLeague(ctx, req.LeagueID, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(table))
}

func (h *Handler) GetCaptainAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCaptainAnalysis")
	defer span.End()

	req, err := h.leagueRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.deps.Captains.Analyze(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "captain analysis failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, captainAnalysisToDTO(analysis))
}

func (h *Handler) ListChips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChips")
	defer span.End()

	req, err := h.leagueRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	chips, err := h.deps.Chips.ListByLeague(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list chips failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]chipSummaryDTO, 0, len(chips))
	for _, chip := range chips {
		items = append(items, chipSummaryToDTO(chip))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueSummary")
	defer span.End()

	req, err := h.leagueRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.deps.Summaries.Get(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "league summary failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueSummaryToDTO(summary))
}
