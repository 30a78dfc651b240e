package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/match"
	matchmock "github.com/riskibarqy/predipto/internal/mocks/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMatchService_ListCompetitions_FallsBackOnProviderErrorUsingMockery(t *testing.T) {
	t.Parallel()

	primary := matchmock.NewProvider(t)
	fallback := matchmock.NewProvider(t)
	service := NewMatchService(primary, fallback, time.Minute, nil)

	primary.
		On("ListCompetitions", mock.Anything).
		Return(nil, errors.New("rate limited")).
		Once()
	fallback.
		On("ListCompetitions", mock.Anything).
		Return([]match.Competition{{ID: 2018, Name: "European Championship", Code: "EC"}}, nil).
		Once()

	got, err := service.ListCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "EC", got[0].Code)

	cached, err := service.ListCompetitions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, cached)
}

func TestMatchService_ListMatchesByCompetition_SortsByKickoffUsingMockery(t *testing.T) {
	t.Parallel()

	primary := matchmock.NewProvider(t)
	service := NewMatchService(primary, nil, time.Minute, nil)
	early := time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)

	primary.
		On("ListMatchesByCompetition", mock.Anything, int64(2018)).
		Return([]match.Match{{ID: 1001, KickoffAt: late}, {ID: 1002, KickoffAt: early}}, nil).
		Once()

	got, err := service.ListMatchesByCompetition(context.Background(), 2018)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1002), got[0].ID)
	assert.Equal(t, int64(1001), got[1].ID)

	_, err = service.ListMatchesByCompetition(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchService_ListUpcoming_DisabledProviderUsesFallbackUsingMockery(t *testing.T) {
	t.Parallel()

	fallback := matchmock.NewProvider(t)
	service := NewMatchService(nil, fallback, time.Minute, nil)

	fallback.
		On("ListUpcomingMatches", mock.Anything).
		Return([]match.Match{{ID: 1006}}, nil).
		Once()

	got, err := service.ListUpcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestMatchService_GetTeamUsingMockery(t *testing.T) {
	t.Parallel()

	primary := matchmock.NewProvider(t)
	fallback := matchmock.NewProvider(t)
	service := NewMatchService(primary, fallback, time.Minute, nil)

	primary.On("GetTeam", mock.Anything, int64(759)).Return(match.Team{}, false, errors.New("timeout")).Once()
	fallback.On("GetTeam", mock.Anything, int64(759)).Return(match.Team{ID: 759, Name: "Germany"}, true, nil).Once()
	primary.On("GetTeam", mock.Anything, int64(1)).Return(match.Team{}, false, nil).Once()

	got, err := service.GetTeam(context.Background(), 759)
	require.NoError(t, err)
	assert.Equal(t, "Germany", got.Name)

	_, err = service.GetTeam(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatchService_NoProviderAvailable(t *testing.T) {
	t.Parallel()

	service := NewMatchService(nil, nil, time.Minute, nil)
	_, err := service.ListCompetitions(context.Background())
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}
