package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fpl-league-sync/internal/usecase"
)

func (h *Handler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerHistory")
	defer span.End()

	req, err := h.playerRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	history, err := h.deps.Players.History(ctx, req.EntryID)
	if err != nil {
		h.logger.WarnContext(ctx, "player history failed", "entry_id", req.EntryID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(history) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: no data found for entry=%d", usecase.ErrNotFound, req.EntryID))
		return
	}

	items := make([]playerGameweekDTO, 0, len(history))
	for _, item := range history {
		items = append(items, playerGameweekToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, playerHistoryDTO{
		EntryID:        req.EntryID,
		TotalGameweeks: len(items),
		History:        items,
	})
}

func (h *Handler) GetPlayerTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerTrends")
	defer span.End()

	req, err := h.playerRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	trends, err := h.deps.Players.Trends(ctx, req.EntryID)
	if err != nil {
		h.logger.WarnContext(ctx, "player trends failed", "entry_id", req.EntryID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(trends) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: no data found for entry=%d", usecase.ErrNotFound, req.EntryID))
		return
	}

	items := make([]leagueTrendDTO, 0, len(trends))
	for _, item := range trends {
		items = append(items, leagueTrendToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, playerTrendsDTO{
		EntryID: req.EntryID,
		Leagues: items,
	})
}
