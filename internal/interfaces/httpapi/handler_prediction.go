package httpapi

import (
	"net/http"

	"github.com/riskibarqy/predipto/internal/usecase"
)

func (h *Handler) SaveMyPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyPrediction")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req scoreRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.predictionService.Save(ctx, usecase.SavePredictionInput{
		UserID:    principal.UserID,
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save prediction failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(item))
}

func (h *Handler) GetMyPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPrediction")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.predictionService.Get(ctx, principal.UserID, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(item))
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.predictionService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetMyMatchPoints returns the caller's points for one match. A match that has
// not been scored yet answers with scored=false instead of 404.
func (h *Handler) GetMyMatchPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyMatchPoints")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	points, exists, err := h.scoringService.GetPointsForMatch(ctx, principal.UserID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match points failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, pointsDTO{UserID: principal.UserID, MatchID: matchID, Scored: false})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pointsToDTO(points))
}
