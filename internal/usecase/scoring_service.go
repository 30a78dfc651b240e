package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/predipto/internal/domain/prediction"
	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultScoringWorkers = 8
	maxScoringWorkers     = 64
)

// LeaderboardInvalidator drops cached standings after totals change.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context)
}

type ScoringServiceConfig struct {
	Workers int
}

// MatchScoringReport summarises one scoring pass over a match.
type MatchScoringReport struct {
	MatchID           int64
	Result            scoring.Scoreline
	PredictionsScored int
	UsersUpdated      int
	TierCounts        map[scoring.Tier]int
	DurationMs        int64
}

type RecomputeReport struct {
	Matches      []MatchScoringReport
	UsersUpdated int
	DurationMs   int64
}

type RecomputeOptions struct {
	// OnMatchScored is invoked after the points of each match are written.
	OnMatchScored func(report MatchScoringReport)
}

type ScoringService struct {
	resultRepo     result.Repository
	predictionRepo prediction.Repository
	scoringRepo    scoring.Repository
	userRepo       user.Repository
	leaderboard    LeaderboardInvalidator
	workers        int
	logger         *logging.Logger
	now            func() time.Time
	recomputeGuard resilience.Group[RecomputeReport]
	totalLocks     resilience.KeyedMutex
}

func NewScoringService(
	resultRepo result.Repository,
	predictionRepo prediction.Repository,
	scoringRepo scoring.Repository,
	userRepo user.Repository,
	leaderboard LeaderboardInvalidator,
	cfg ScoringServiceConfig,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		resultRepo:     resultRepo,
		predictionRepo: predictionRepo,
		scoringRepo:    scoringRepo,
		userRepo:       userRepo,
		leaderboard:    leaderboard,
		workers:        normalizeScoringWorkers(cfg.Workers),
		logger:         logger,
		now:            time.Now,
	}
}

// ScoreMatch awards points to every prediction of a match that has a result
// and rebuilds the totals of the affected users. Rerunning it after a result
// correction overwrites the previous points instead of adding to them.
func (s *ScoringService) ScoreMatch(ctx context.Context, matchID int64) (MatchScoringReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreMatch", matchAttr(matchID))
	defer span.End()

	if matchID <= 0 {
		return MatchScoringReport{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}

	start := s.now()
	item, exists, err := s.resultRepo.Get(ctx, matchID)
	if err != nil {
		return MatchScoringReport{}, fmt.Errorf("get result: %w", err)
	}
	if !exists {
		return MatchScoringReport{}, fmt.Errorf("%w: result match=%d", ErrNotFound, matchID)
	}

	report, users, err := s.scoreResult(ctx, item)
	if err != nil {
		return report, err
	}

	updated, err := s.refreshTotals(ctx, users)
	report.UsersUpdated = updated
	report.DurationMs = s.now().Sub(start).Milliseconds()
	if err != nil {
		return report, err
	}

	s.invalidateLeaderboard(ctx)
	s.logger.InfoContext(ctx, "match scored",
		"match_id", matchID,
		"predictions", report.PredictionsScored,
		"users_updated", report.UsersUpdated,
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

// RecomputeAll rescores every recorded result and rebuilds every affected
// total once at the end. Concurrent callers share a single run.
func (s *ScoringService) RecomputeAll(ctx context.Context, opts RecomputeOptions) (RecomputeReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeAll")
	defer span.End()

	report, err, shared := s.recomputeGuard.Do("scoring:recompute:all", func() (RecomputeReport, error) {
		return s.recomputeAllOnce(ctx, opts)
	})
	if err != nil {
		return RecomputeReport{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "recompute joined an in-flight run")
	}

	return report, nil
}

func (s *ScoringService) recomputeAllOnce(ctx context.Context, opts RecomputeOptions) (RecomputeReport, error) {
	start := s.now()
	results, err := s.resultRepo.List(ctx)
	if err != nil {
		return RecomputeReport{}, fmt.Errorf("list results: %w", err)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].MatchID < results[j].MatchID })

	out := RecomputeReport{Matches: make([]MatchScoringReport, 0, len(results))}
	affected := make(map[string]struct{})
	for _, item := range results {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		report, users, err := s.scoreResult(ctx, item)
		if err != nil {
			return out, err
		}
		for userID := range users {
			affected[userID] = struct{}{}
		}
		out.Matches = append(out.Matches, report)
		if opts.OnMatchScored != nil {
			opts.OnMatchScored(report)
		}
	}

	updated, err := s.refreshTotals(ctx, affected)
	out.UsersUpdated = updated
	out.DurationMs = s.now().Sub(start).Milliseconds()
	if err != nil {
		return out, err
	}

	s.invalidateLeaderboard(ctx)
	s.logger.InfoContext(ctx, "recomputed all points",
		"matches", len(out.Matches),
		"users_updated", out.UsersUpdated,
		"duration_ms", out.DurationMs,
	)
	return out, nil
}

func (s *ScoringService) GetPointsForMatch(ctx context.Context, userID string, matchID int64) (scoring.Points, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetPointsForMatch", userAttr(userID), matchAttr(matchID))
	defer span.End()

	if userID == "" || matchID <= 0 {
		return scoring.Points{}, false, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}

	item, exists, err := s.scoringRepo.GetPoints(ctx, userID, matchID)
	if err != nil {
		return scoring.Points{}, false, fmt.Errorf("get points: %w", err)
	}
	return item, exists, nil
}

func (s *ScoringService) ListPointsByUser(ctx context.Context, userID string) ([]scoring.Points, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListPointsByUser", userAttr(userID))
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.scoringRepo.ListPointsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list points by user: %w", err)
	}
	return items, nil
}

// scoreResult writes one Points row per prediction of the result's match and
// returns the set of users whose rows were written.
func (s *ScoringService) scoreResult(ctx context.Context, item result.Result) (MatchScoringReport, map[string]struct{}, error) {
	actual := item.Scoreline()
	report := MatchScoringReport{
		MatchID:    item.MatchID,
		Result:     actual,
		TierCounts: make(map[scoring.Tier]int, 4),
	}

	predictions, err := s.predictionRepo.ListByMatch(ctx, item.MatchID)
	if err != nil {
		return report, nil, fmt.Errorf("list predictions by match: %w", err)
	}
	users := make(map[string]struct{}, len(predictions))
	if len(predictions) == 0 {
		return report, users, nil
	}

	workerCount := s.workers
	if workerCount > len(predictions) {
		workerCount = len(predictions)
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return report, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	calculatedAt := s.now().UTC()
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)
	for _, p := range predictions {
		p := p
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			tier := scoring.Classify(p.Scoreline(), actual)
			row := scoring.Points{
				UserID:       p.UserID,
				MatchID:      p.MatchID,
				Points:       tier.Points(),
				Tier:         tier,
				CalculatedAt: calculatedAt,
			}
			upsertErr := s.scoringRepo.UpsertPoints(ctx, row)

			mu.Lock()
			defer mu.Unlock()
			if upsertErr != nil {
				errs = append(errs, fmt.Errorf("upsert points user=%s match=%d: %w", p.UserID, p.MatchID, upsertErr))
				return
			}
			report.TierCounts[tier]++
			report.PredictionsScored++
			users[p.UserID] = struct{}{}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return report, nil, fmt.Errorf("submit scoring task: %w", err)
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		return report, nil, errors.Join(errs...)
	}
	return report, users, nil
}

// refreshTotals re-sums every Points row of each user from scratch.
func (s *ScoringService) refreshTotals(ctx context.Context, users map[string]struct{}) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.workers)
	for userID := range users {
		userID := userID
		p.Go(func(ctx context.Context) error {
			return s.refreshUserTotal(ctx, userID)
		})
	}
	if err := p.Wait(); err != nil {
		return 0, err
	}

	return len(users), nil
}

// refreshUserTotal holds the user's lock across the read and the write so two
// matches scored at once cannot store a total built from a stale read.
func (s *ScoringService) refreshUserTotal(ctx context.Context, userID string) error {
	unlock := s.totalLocks.Lock(userID)
	defer unlock()

	if refresher, ok := s.userRepo.(user.TotalRefresher); ok {
		_, err := refresher.RefreshTotalPoints(ctx, userID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return fmt.Errorf("refresh total points user=%s: %w", userID, err)
		}
	}

	rows, err := s.scoringRepo.ListPointsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list points user=%s: %w", userID, err)
	}
	total := scoring.SumPoints(userID, rows)
	if err := s.userRepo.SetTotalPoints(ctx, userID, total.TotalPoints); err != nil {
		return fmt.Errorf("set total points user=%s: %w", userID, err)
	}
	return nil
}

func (s *ScoringService) invalidateLeaderboard(ctx context.Context) {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
}

func normalizeScoringWorkers(value int) int {
	if value <= 0 {
		return defaultScoringWorkers
	}
	if value > maxScoringWorkers {
		return maxScoringWorkers
	}
	return value
}
