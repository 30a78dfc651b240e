package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/usecase"
)

type Handler struct {
	matchService       *usecase.MatchService
	predictionService  *usecase.PredictionService
	resultService      *usecase.ResultService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	userService        *usecase.UserService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	predictionService *usecase.PredictionService,
	resultService *usecase.ResultService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	userService *usecase.UserService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:       matchService,
		predictionService:  predictionService,
		resultService:      resultService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		userService:        userService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeAndValidate reads a strict JSON body into dst and runs struct validation.
func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}
