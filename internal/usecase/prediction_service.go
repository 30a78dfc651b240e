package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/prediction"
	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/platform/logging"
)

type SavePredictionInput struct {
	UserID    string
	MatchID   int64
	HomeScore int
	AwayScore int
}

type PredictionService struct {
	predictionRepo prediction.Repository
	resultRepo     result.Repository
	scorer         matchScorer
	bounds         scoring.Bounds
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(
	predictionRepo prediction.Repository,
	resultRepo result.Repository,
	scorer matchScorer,
	bounds scoring.Bounds,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PredictionService{
		predictionRepo: predictionRepo,
		resultRepo:     resultRepo,
		scorer:         scorer,
		bounds:         bounds.Normalize(),
		logger:         logger,
		now:            time.Now,
	}
}

// Save creates the caller's prediction for a match or replaces its scoreline.
// Predictions are frozen once the match has a result.
func (s *PredictionService) Save(ctx context.Context, input SavePredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Save", userAttr(input.UserID), matchAttr(input.MatchID))
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}

	scoreline := scoring.Scoreline{Home: input.HomeScore, Away: input.AwayScore}
	if err := s.bounds.Validate(scoreline); err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	_, hasResult, err := s.resultRepo.Get(ctx, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get result: %w", err)
	}
	if hasResult {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%d already has a result", ErrPredictionLocked, input.MatchID)
	}

	existing, exists, err := s.predictionRepo.Get(ctx, userID, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction: %w", err)
	}

	now := s.now().UTC()
	item := prediction.Prediction{
		ID:        prediction.BuildID(userID, input.MatchID),
		UserID:    userID,
		MatchID:   input.MatchID,
		HomeScore: scoreline.Home,
		AwayScore: scoreline.Away,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if exists {
		item.CreatedAt = existing.CreatedAt
	}
	if err := item.Validate(); err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.predictionRepo.Upsert(ctx, item); err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}
	if err := s.scoreIfResultArrived(ctx, input.MatchID); err != nil {
		return prediction.Prediction{}, err
	}

	s.logger.InfoContext(ctx, "prediction saved",
		"user_id", userID,
		"match_id", input.MatchID,
		"updated", exists,
	)
	return item, nil
}

// scoreIfResultArrived covers a result recorded between the lock check and the
// upsert. That scoring pass may have missed this prediction, so the match is
// scored again.
func (s *PredictionService) scoreIfResultArrived(ctx context.Context, matchID int64) error {
	_, hasResult, err := s.resultRepo.Get(ctx, matchID)
	if err != nil {
		return fmt.Errorf("recheck result: %w", err)
	}
	if !hasResult {
		return nil
	}
	if s.scorer == nil {
		s.logger.WarnContext(ctx, "result recorded while saving prediction, left for reconcile", "match_id", matchID)
		return nil
	}

	s.logger.WarnContext(ctx, "result recorded while saving prediction, rescoring match", "match_id", matchID)
	if _, err := s.scorer.ScoreMatch(ctx, matchID); err != nil {
		return fmt.Errorf("score match after late prediction: %w", err)
	}
	return nil
}

func (s *PredictionService) Get(ctx context.Context, userID string, matchID int64) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Get", userAttr(userID), matchAttr(matchID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" || matchID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}

	item, exists, err := s.predictionRepo.Get(ctx, userID, matchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction user=%s match=%d", ErrNotFound, userID, matchID)
	}

	return item, nil
}

func (s *PredictionService) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	return items, nil
}
