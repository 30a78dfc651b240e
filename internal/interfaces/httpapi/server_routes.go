package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches", handler.ListMatchesByCompetition)
	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/matches/{matchID}/result", handler.GetMatchResult)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.RegisterMe)))
	mux.Handle("GET /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("PATCH /v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMe)))

	mux.Handle("PUT /v1/matches/{matchID}/prediction", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyPrediction)))
	mux.Handle("GET /v1/matches/{matchID}/prediction", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPrediction)))
	mux.Handle("GET /v1/matches/{matchID}/points", RequireAuth(verifier, http.HandlerFunc(handler.GetMyMatchPoints)))
	mux.Handle("GET /v1/predictions/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPredictions)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, admins AdminChecker) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(admins, h))
	}

	mux.Handle("PUT /v1/admin/matches/{matchID}/result", admin(handler.RecordMatchResult))
	mux.Handle("POST /v1/admin/scoring/recompute", admin(handler.RecomputeScores))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeJob)))
}
