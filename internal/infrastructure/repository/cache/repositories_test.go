package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/user"
	resultmock "github.com/riskibarqy/predipto/internal/mocks/domain/result"
	usermock "github.com/riskibarqy/predipto/internal/mocks/domain/user"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResultRepository_CachesUntilUpsert(t *testing.T) {
	ctx := context.Background()
	next := resultmock.NewRepository(t)
	repo := NewResultRepository(next, time.Minute)

	first := result.Result{MatchID: 1001, HomeScore: 2, AwayScore: 1}
	next.On("Get", mock.Anything, int64(1001)).Return(first, true, nil).Once()

	for i := 0; i < 2; i++ {
		got, exists, err := repo.Get(ctx, 1001)
		require.NoError(t, err)
		require.True(t, exists)
		require.Equal(t, first, got)
	}

	corrected := result.Result{MatchID: 1001, HomeScore: 2, AwayScore: 2}
	next.On("Upsert", mock.Anything, corrected).Return(nil).Once()
	next.On("Get", mock.Anything, int64(1001)).Return(corrected, true, nil).Once()

	require.NoError(t, repo.Upsert(ctx, corrected))
	got, _, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	require.Equal(t, corrected, got)
}

func TestResultRepository_CachesMissingResult(t *testing.T) {
	ctx := context.Background()
	next := resultmock.NewRepository(t)
	repo := NewResultRepository(next, time.Minute)

	next.On("Get", mock.Anything, int64(7)).Return(result.Result{}, false, nil).Once()

	for i := 0; i < 3; i++ {
		_, exists, err := repo.Get(ctx, 7)
		require.NoError(t, err)
		require.False(t, exists)
	}
}

func TestResultRepository_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	next := resultmock.NewRepository(t)
	repo := NewResultRepository(next, time.Minute)

	next.On("List", mock.Anything).Return([]result.Result{{MatchID: 1}, {MatchID: 2}}, nil).Once()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].MatchID = 99

	again, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), again[0].MatchID)
}

func TestUserRepository_SetTotalPointsDropsCachedProfile(t *testing.T) {
	ctx := context.Background()
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, time.Minute)

	before := user.Profile{UserID: "u-1", DisplayName: "ana", TotalPoints: 10}
	after := before
	after.TotalPoints = 30

	next.On("Get", mock.Anything, "u-1").Return(before, true, nil).Once()
	next.On("SetTotalPoints", mock.Anything, "u-1", 30).Return(nil).Once()
	next.On("Get", mock.Anything, "u-1").Return(after, true, nil).Once()

	got, _, err := repo.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 10, got.TotalPoints)

	require.NoError(t, repo.SetTotalPoints(ctx, "u-1", 30))

	got, _, err = repo.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 30, got.TotalPoints)
}

func TestUserRepository_RefreshTotalPointsUnsupportedByNext(t *testing.T) {
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, time.Minute)

	_, err := repo.RefreshTotalPoints(context.Background(), "u-1")
	require.True(t, errors.Is(err, errors.ErrUnsupported))
}
