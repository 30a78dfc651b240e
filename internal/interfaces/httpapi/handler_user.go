package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/predipto/internal/usecase"
)

func (h *Handler) RegisterMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterMe")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req registerUserRequest
	if r.ContentLength != 0 {
		if err := h.decodeAndValidate(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	profile, err := h.userService.Register(ctx, principal, req.DisplayName)
	if err != nil {
		h.logger.WarnContext(ctx, "register user failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.userService.Get(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMe")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateUserRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.userService.UpdateDisplayName(ctx, principal.UserID, req.DisplayName)
	if err != nil {
		h.logger.WarnContext(ctx, "update user failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = value
	}

	entries, err := h.leaderboardService.Top(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, leaderboardEntryDTO{
			Rank:        entry.Rank,
			UserID:      entry.UserID,
			DisplayName: entry.DisplayName,
			TotalPoints: entry.TotalPoints,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
