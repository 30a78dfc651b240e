package httpapi

import (
	"net/http"

	"github.com/riskibarqy/predipto/internal/usecase"
)

func (h *Handler) GetMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchResult")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.resultService.Get(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(item))
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
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

	report, err := h.resultService.Record(ctx, usecase.RecordResultInput{
		ActorUserID: principal.UserID,
		MatchID:     matchID,
		HomeScore:   *req.HomeScore,
		AwayScore:   *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringReportToDTO(report))
}

func (h *Handler) RecomputeScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeScores")
	defer span.End()

	report, err := h.scoringService.RecomputeAll(ctx, usecase.RecomputeOptions{})
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute scores failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeReportToDTO(report))
}
