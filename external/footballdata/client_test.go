package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/match"
	"github.com/riskibarqy/predipto/internal/platform/resilience"
	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		Token:          "secret-token",
		MaxRetries:     1,
		RetryBackoff:   time.Millisecond,
		CircuitBreaker: breaker,
	})
}

func TestClient_ListCompetitions(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/competitions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Auth-Token"); got != "secret-token" {
			t.Errorf("unexpected auth header: %q", got)
		}
		_, _ = w.Write([]byte(`{"count":2,"competitions":[
			{"id":2021,"name":"Premier League","code":"PL","type":"LEAGUE","emblem":"https://crests.football-data.org/PL.png"},
			{"id":0,"name":"broken"}
		]}`))
	}, resilience.CircuitBreakerConfig{})

	got, err := client.ListCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, match.Competition{ID: 2021, Name: "Premier League", Code: "PL", Type: "LEAGUE", Emblem: "https://crests.football-data.org/PL.png"}, got[0])
}

func TestClient_ListMatchesByCompetition_MapsScores(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/competitions/2018/matches" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"matches":[
			{"id":1001,"utcDate":"2025-06-14T19:00:00Z","status":"FINISHED","matchday":1,"stage":"GROUP_STAGE","group":"GROUP_F",
			 "competition":{"id":2018,"name":"European Championship"},
			 "homeTeam":{"id":759,"name":"Germany","tla":"GER"},"awayTeam":{"id":773,"name":"France","tla":"FRA"},
			 "score":{"winner":"HOME_TEAM","fullTime":{"home":2,"away":1}}},
			{"id":1002,"utcDate":"not-a-date","status":"SCHEDULED"},
			{"id":1003,"utcDate":"2025-06-15T19:00:00Z","status":"timed",
			 "homeTeam":{"id":770,"name":"England"},"awayTeam":{"id":8601,"name":"Netherlands"},
			 "score":{"fullTime":{"home":null,"away":null}}}
		]}`))
	}, resilience.CircuitBreakerConfig{})

	got, err := client.ListMatchesByCompetition(context.Background(), 2018)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, int64(1001), first.ID)
	assert.Equal(t, match.StatusFinished, first.Status)
	assert.Equal(t, "GROUP_F", first.Group)
	assert.Equal(t, 1, first.Matchday)
	require.NotNil(t, first.HomeScore)
	require.NotNil(t, first.AwayScore)
	assert.Equal(t, 2, *first.HomeScore)
	assert.Equal(t, 1, *first.AwayScore)

	assert.Equal(t, match.StatusTimed, got[1].Status)
	assert.Nil(t, got[1].HomeScore)
}

func TestClient_GetTeam_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"The resource you are looking for does not exist."}`))
	}, resilience.CircuitBreakerConfig{})

	_, exists, err := client.GetTeam(context.Background(), 123456)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id":57,"name":"Arsenal FC","shortName":"Arsenal","tla":"ARS"}`))
	}, resilience.CircuitBreakerConfig{})

	got, exists, err := client.GetTeam(context.Background(), 57)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "ARS", got.TLA)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_CircuitBreakerOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute})

	_, err := client.ListCompetitions(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))

	_, err = client.ListCompetitions(context.Background())
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_NonRetryableStatusIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"restricted resource"}`))
	}, resilience.CircuitBreakerConfig{})

	_, err := client.ListUpcomingMatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
	assert.Equal(t, int32(1), calls.Load())
}
