package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/match"
	"github.com/riskibarqy/predipto/internal/platform/cache"
	"github.com/riskibarqy/predipto/internal/platform/logging"
)

const defaultMatchCacheTTL = 5 * time.Minute

// MatchService reads match data from the upstream provider and answers from
// the built-in dataset when the provider is disabled or failing.
type MatchService struct {
	primary      match.Provider
	fallback     match.Provider
	competitions *cache.Store[[]match.Competition]
	matches      *cache.Store[[]match.Match]
	logger       *logging.Logger
}

func NewMatchService(primary, fallback match.Provider, cacheTTL time.Duration, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultMatchCacheTTL
	}

	return &MatchService{
		primary:      primary,
		fallback:     fallback,
		competitions: cache.NewStore[[]match.Competition](cacheTTL),
		matches:      cache.NewStore[[]match.Match](cacheTTL),
		logger:       logger,
	}
}

func (s *MatchService) ListCompetitions(ctx context.Context) ([]match.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListCompetitions")
	defer span.End()

	return s.competitions.GetOrLoad(ctx, "competitions", func(ctx context.Context) ([]match.Competition, error) {
		return withFallback(ctx, s, "list competitions", func(ctx context.Context, provider match.Provider) ([]match.Competition, error) {
			return provider.ListCompetitions(ctx)
		})
	})
}

func (s *MatchService) ListMatchesByCompetition(ctx context.Context, competitionID int64) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatchesByCompetition")
	defer span.End()

	if competitionID <= 0 {
		return nil, fmt.Errorf("%w: competition id must be > 0", ErrInvalidInput)
	}

	key := "competition:" + strconv.FormatInt(competitionID, 10)
	items, err := s.matches.GetOrLoad(ctx, key, func(ctx context.Context) ([]match.Match, error) {
		return withFallback(ctx, s, "list matches by competition", func(ctx context.Context, provider match.Provider) ([]match.Match, error) {
			return provider.ListMatchesByCompetition(ctx, competitionID)
		})
	})
	if err != nil {
		return nil, err
	}
	return sortedByKickoff(items), nil
}

func (s *MatchService) ListUpcoming(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListUpcoming")
	defer span.End()

	items, err := s.matches.GetOrLoad(ctx, "upcoming", func(ctx context.Context) ([]match.Match, error) {
		return withFallback(ctx, s, "list upcoming matches", func(ctx context.Context, provider match.Provider) ([]match.Match, error) {
			return provider.ListUpcomingMatches(ctx)
		})
	})
	if err != nil {
		return nil, err
	}
	return sortedByKickoff(items), nil
}

func (s *MatchService) GetTeam(ctx context.Context, teamID int64) (match.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return match.Team{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	type lookup struct {
		team   match.Team
		exists bool
	}
	found, err := withFallback(ctx, s, "get team", func(ctx context.Context, provider match.Provider) (lookup, error) {
		team, exists, err := provider.GetTeam(ctx, teamID)
		return lookup{team: team, exists: exists}, err
	})
	if err != nil {
		return match.Team{}, err
	}
	if !found.exists {
		return match.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return found.team, nil
}

func withFallback[T any](
	ctx context.Context,
	s *MatchService,
	op string,
	call func(ctx context.Context, provider match.Provider) (T, error),
) (T, error) {
	var zero T
	if s.primary != nil {
		out, err := call(ctx, s.primary)
		if err == nil {
			return out, nil
		}
		s.logger.WarnContext(ctx, "match provider failed, using fallback data", "operation", op, "error", err)
	}
	if s.fallback == nil {
		return zero, fmt.Errorf("%w: %s: no match provider available", ErrDependencyUnavailable, op)
	}

	out, err := call(ctx, s.fallback)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, op, err)
	}
	return out, nil
}

func sortedByKickoff(items []match.Match) []match.Match {
	out := make([]match.Match, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
