package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/health", handler.Health)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/gameweeks/current", handler.CurrentGameweek)
	mux.HandleFunc("GET /v1/collections/{runID}", handler.GetCollectionRun)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/captains", handler.GetCaptainAnalysis)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/chips", handler.ListChips)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/summary", handler.GetLeagueSummary)
	mux.HandleFunc("GET /v1/players/{entryID}/history", handler.GetPlayerHistory)
	mux.HandleFunc("GET /v1/players/{entryID}/trends", handler.GetPlayerTrends)
}

func registerCollectionRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/leagues/{leagueID}/collections", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.StartCollection)))
	mux.Handle("POST /v1/leagues/{leagueID}/collections/sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CollectSync)))
}
