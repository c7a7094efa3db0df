package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/fpl-league-sync/internal/usecase"
)

// StartCollection queues a background run and answers immediately.
func (h *Handler) StartCollection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartCollection")
	defer span.End()

	req, err := h.leagueRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.deps.Runs.Submit(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "submit collection failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, collectionRunToDTO(run))
}

// CollectSync runs the pipeline inside the request.
func (h *Handler) CollectSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CollectSync")
	defer span.End()

	req, err := h.leagueRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.deps.Collector.Run(ctx, req.LeagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "collection failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if result.NoData {
		writeError(ctx, w, fmt.Errorf("%w: no data collected for league=%d", usecase.ErrNotFound, req.LeagueID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, collectionResultToDTO(result, h.now()))
}

func (h *Handler) GetCollectionRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCollectionRun")
	defer span.End()

	req := runRequest{RunID: strings.TrimSpace(r.PathValue("runID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.deps.Runs.Status(ctx, req.RunID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, collectionRunToDTO(run))
}
