package httpapi

import (
	"net/http"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.matchService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListMatchesByCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByCompetition")
	defer span.End()

	competitionID, err := parsePathID(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.ListMatchesByCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	items, err := h.matchService.ListUpcoming(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list upcoming matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}
