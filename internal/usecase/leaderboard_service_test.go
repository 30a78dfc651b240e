package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/user"
	usermock "github.com/riskibarqy/predipto/internal/mocks/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_Top_RanksAndCachesUsingMockery(t *testing.T) {
	t.Parallel()

	userRepo := usermock.NewRepository(t)
	service := NewLeaderboardService(userRepo, time.Minute)

	userRepo.
		On("ListTopByPoints", mock.Anything, DefaultLeaderboardLimit).
		Return([]user.Profile{
			{UserID: "u-2", DisplayName: "bea", TotalPoints: 30},
			{UserID: "u-1", DisplayName: "Al", TotalPoints: 30},
			{UserID: "u-3", DisplayName: "cat", TotalPoints: 55},
			{UserID: "u-4", DisplayName: "dan", TotalPoints: -10},
		}, nil).
		Once()

	got, err := service.Top(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, LeaderboardEntry{Rank: 1, UserID: "u-3", DisplayName: "cat", TotalPoints: 55}, got[0])
	assert.Equal(t, LeaderboardEntry{Rank: 2, UserID: "u-1", DisplayName: "Al", TotalPoints: 30}, got[1])
	assert.Equal(t, 2, got[2].Rank)
	assert.Equal(t, 4, got[3].Rank)

	cached, err := service.Top(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, got, cached)
}

func TestLeaderboardService_Top_InvalidateReloadsUsingMockery(t *testing.T) {
	t.Parallel()

	userRepo := usermock.NewRepository(t)
	service := NewLeaderboardService(userRepo, time.Hour)

	userRepo.
		On("ListTopByPoints", mock.Anything, 5).
		Return([]user.Profile{{UserID: "u-1", DisplayName: "a", TotalPoints: 10}}, nil).
		Once()
	userRepo.
		On("ListTopByPoints", mock.Anything, 5).
		Return([]user.Profile{{UserID: "u-1", DisplayName: "a", TotalPoints: 30}}, nil).
		Once()

	first, err := service.Top(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 10, first[0].TotalPoints)

	service.Invalidate(context.Background())

	second, err := service.Top(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 30, second[0].TotalPoints)
}

func TestNormalizeLeaderboardLimit(t *testing.T) {
	got, err := normalizeLeaderboardLimit(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLeaderboardLimit, got)

	got, err = normalizeLeaderboardLimit(500)
	require.NoError(t, err)
	assert.Equal(t, MaxLeaderboardLimit, got)

	_, err = normalizeLeaderboardLimit(-1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
