package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/predipto/internal/usecase"
)

// RunRecomputeJob is the scheduler entry point for the periodic points reconcile.
func (h *Handler) RunRecomputeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeJob")
	defer span.End()

	started := time.Now()
	report, err := h.scoringService.RecomputeAll(ctx, usecase.RecomputeOptions{})
	if err != nil {
		h.logger.WarnContext(ctx, "run recompute job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recompute job completed",
		"matches", len(report.Matches),
		"users_updated", report.UsersUpdated,
		"elapsed_ms", time.Since(started).Milliseconds(),
	)
	writeSuccess(ctx, w, http.StatusOK, recomputeReportToDTO(report))
}
