package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/platform/cache"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100

	leaderboardCachePrefix = "leaderboard:"
)

type LeaderboardEntry struct {
	Rank        int
	UserID      string
	DisplayName string
	TotalPoints int
}

type LeaderboardService struct {
	userRepo user.Repository
	cache    *cache.Store[[]LeaderboardEntry]
}

func NewLeaderboardService(userRepo user.Repository, cacheTTL time.Duration) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		cache:    cache.NewStore[[]LeaderboardEntry](cacheTTL),
	}
}

// Top returns the highest totals first. Ties share a rank and are ordered by
// display name.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Top")
	defer span.End()

	limit, err := normalizeLeaderboardLimit(limit)
	if err != nil {
		return nil, err
	}

	key := leaderboardCachePrefix + strconv.Itoa(limit)
	entries, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]LeaderboardEntry, error) {
		profiles, err := s.userRepo.ListTopByPoints(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("list top users by points: %w", err)
		}
		return rankProfiles(profiles, limit), nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]LeaderboardEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *LeaderboardService) Invalidate(ctx context.Context) {
	s.cache.DeletePrefix(ctx, leaderboardCachePrefix)
}

func normalizeLeaderboardLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultLeaderboardLimit, nil
	case limit < 0:
		return 0, fmt.Errorf("%w: limit must be > 0", ErrInvalidInput)
	case limit > MaxLeaderboardLimit:
		return MaxLeaderboardLimit, nil
	default:
		return limit, nil
	}
}

func rankProfiles(profiles []user.Profile, limit int) []LeaderboardEntry {
	sorted := make([]user.Profile, len(profiles))
	copy(sorted, profiles)
	user.SortByStanding(sorted)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]LeaderboardEntry, 0, len(sorted))
	for i, item := range sorted {
		rank := i + 1
		if i > 0 && item.TotalPoints == sorted[i-1].TotalPoints {
			rank = out[i-1].Rank
		}
		out = append(out, LeaderboardEntry{
			Rank:        rank,
			UserID:      item.UserID,
			DisplayName: item.DisplayName,
			TotalPoints: item.TotalPoints,
		})
	}
	return out
}
