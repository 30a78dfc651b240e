package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/platform/logging"
)

type RecordResultInput struct {
	ActorUserID string
	MatchID     int64
	HomeScore   int
	AwayScore   int
}

type adminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type matchScorer interface {
	ScoreMatch(ctx context.Context, matchID int64) (MatchScoringReport, error)
}

type ResultService struct {
	resultRepo result.Repository
	admins     adminChecker
	scorer     matchScorer
	bounds     scoring.Bounds
	logger     *logging.Logger
	now        func() time.Time
}

func NewResultService(
	resultRepo result.Repository,
	admins adminChecker,
	scorer matchScorer,
	bounds scoring.Bounds,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultService{
		resultRepo: resultRepo,
		admins:     admins,
		scorer:     scorer,
		bounds:     bounds.Normalize(),
		logger:     logger,
		now:        time.Now,
	}
}

// Record stores the final score of a match and scores its predictions.
// Recording a different score later replaces the previous points.
func (s *ResultService) Record(ctx context.Context, input RecordResultInput) (MatchScoringReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Record", matchAttr(input.MatchID))
	defer span.End()

	actor := strings.TrimSpace(input.ActorUserID)
	if actor == "" {
		return MatchScoringReport{}, fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}
	isAdmin, err := s.admins.IsAdmin(ctx, actor)
	if err != nil {
		return MatchScoringReport{}, fmt.Errorf("check admin: %w", err)
	}
	if !isAdmin {
		return MatchScoringReport{}, fmt.Errorf("%w: user=%s is not an admin", ErrForbidden, actor)
	}

	if input.MatchID <= 0 {
		return MatchScoringReport{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}
	scoreline := scoring.Scoreline{Home: input.HomeScore, Away: input.AwayScore}
	if err := s.bounds.Validate(scoreline); err != nil {
		return MatchScoringReport{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	existing, exists, err := s.resultRepo.Get(ctx, input.MatchID)
	if err != nil {
		return MatchScoringReport{}, fmt.Errorf("get result: %w", err)
	}

	now := s.now().UTC()
	item := result.Result{
		MatchID:   input.MatchID,
		HomeScore: scoreline.Home,
		AwayScore: scoreline.Away,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actor,
	}
	if exists {
		item.CreatedAt = existing.CreatedAt
	}
	if err := s.resultRepo.Upsert(ctx, item); err != nil {
		return MatchScoringReport{}, fmt.Errorf("upsert result: %w", err)
	}
	if exists && existing.Scoreline() != scoreline {
		s.logger.WarnContext(ctx, "result corrected",
			"match_id", input.MatchID,
			"previous_home", existing.HomeScore,
			"previous_away", existing.AwayScore,
			"home", scoreline.Home,
			"away", scoreline.Away,
			"actor", actor,
		)
	}

	report, err := s.scorer.ScoreMatch(ctx, input.MatchID)
	if err != nil {
		return report, fmt.Errorf("score match: %w", err)
	}

	return report, nil
}

func (s *ResultService) Get(ctx context.Context, matchID int64) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Get", matchAttr(matchID))
	defer span.End()

	if matchID <= 0 {
		return result.Result{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.resultRepo.Get(ctx, matchID)
	if err != nil {
		return result.Result{}, fmt.Errorf("get result: %w", err)
	}
	if !exists {
		return result.Result{}, fmt.Errorf("%w: result match=%d", ErrNotFound, matchID)
	}

	return item, nil
}

func (s *ResultService) List(ctx context.Context) ([]result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.List")
	defer span.End()

	items, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return items, nil
}
