package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/predipto/external/footballdata"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerifier map[string]user.Principal

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       any            `json:"data"`
	Error      map[string]any `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouterWithBounds(t, scoring.DefaultBounds())
}

func newTestRouterWithBounds(t *testing.T, bounds scoring.Bounds) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	users := memory.NewUserRepository([]user.Profile{
		{UserID: "admin-1", Email: "admin@predipto.app", DisplayName: "admin", IsAdmin: true},
	})
	predictions := memory.NewPredictionRepository()
	results := memory.NewResultRepository()
	points := memory.NewPointsRepository()

	userService := usecase.NewUserService(users)
	leaderboard := usecase.NewLeaderboardService(users, time.Minute)
	scoringService := usecase.NewScoringService(results, predictions, points, users, leaderboard, usecase.ScoringServiceConfig{Workers: 2}, logger)
	predictionService := usecase.NewPredictionService(predictions, results, scoringService, bounds, logger)
	resultService := usecase.NewResultService(results, userService, scoringService, bounds, logger)
	matchService := usecase.NewMatchService(nil, footballdata.NewFallback(), time.Minute, logger)

	handler := NewHandler(matchService, predictionService, resultService, scoringService, leaderboard, userService, logger)
	verifier := staticVerifier{
		"admin-token": {UserID: "admin-1", Email: "admin@predipto.app"},
		"ana-token":   {UserID: "u-ana", Email: "ana@example.com"},
		"ben-token":   {UserID: "u-ben", Email: "ben@example.com"},
	}
	return NewRouter(handler, verifier, userService, logger, RouterConfig{
		SwaggerEnabled:   true,
		InternalJobToken: "job-secret",
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %s %s: %v", method, path, err)
		}
	}
	return rec.Code, out
}

func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	out, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", env.Data)
	}
	return out
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	code, env := doRequest(t, router, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", dataMap(t, env)["status"])
}

func TestRouter_PublicMatchEndpointsUseFallbackDataset(t *testing.T) {
	router := newTestRouter(t)

	code, env := doRequest(t, router, http.MethodGet, "/v1/competitions", "", "")
	require.Equal(t, http.StatusOK, code)
	competitions, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, competitions, 5)

	code, _ = doRequest(t, router, http.MethodGet, "/v1/competitions/abc/matches", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_PredictionRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	code, env := doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "", `{"homeScore":1,"awayScore":0}`)
	require.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHENTICATED", env.Error["status"])

	code, _ = doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "bogus", `{"homeScore":1,"awayScore":0}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_PredictionValidation(t *testing.T) {
	router := newTestRouter(t)

	cases := []string{
		`{"homeScore":-1,"awayScore":0}`,
		`{"homeScore":100,"awayScore":0}`,
		`{"homeScore":1}`,
		`{"homeScore":1,"awayScore":0,"extra":true}`,
		`not json`,
	}
	for _, body := range cases {
		code, env := doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "ana-token", body)
		if code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, code)
		}
		if env.Error["status"] != "INVALID_ARGUMENT" {
			t.Fatalf("body %s: unexpected error status %v", body, env.Error["status"])
		}
	}
}

func errorReason(t *testing.T, env envelope) string {
	t.Helper()
	items, ok := env.Error["errors"].([]any)
	require.True(t, ok, "expected error items")
	require.NotEmpty(t, items)
	return items[0].(map[string]any)["reason"].(string)
}

func TestRouter_ScoreOutOfRangeReason(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{`{"homeScore":100,"awayScore":0}`, `{"homeScore":-1,"awayScore":0}`} {
		code, env := doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "ana-token", body)
		require.Equal(t, http.StatusBadRequest, code, body)
		assert.Equal(t, "scoreOutOfRange", errorReason(t, env), body)
	}

	code, env := doRequest(t, router, http.MethodPut, "/v1/admin/matches/1001/result", "admin-token", `{"homeScore":0,"awayScore":120}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "scoreOutOfRange", errorReason(t, env))
}

func TestRouter_ScoreBoundsFollowConfiguration(t *testing.T) {
	router := newTestRouterWithBounds(t, scoring.Bounds{Min: 0, Max: 150})

	code, env := doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "ana-token", `{"homeScore":120,"awayScore":0}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 120, dataMap(t, env)["homeScore"])

	code, env = doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "ana-token", `{"homeScore":151,"awayScore":0}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "scoreOutOfRange", errorReason(t, env))
}

func TestRouter_PredictScoreAndRank(t *testing.T) {
	router := newTestRouter(t)

	for _, token := range []string{"ana-token", "ben-token"} {
		code, _ := doRequest(t, router, http.MethodPost, "/v1/users/me", token, "")
		require.Equal(t, http.StatusOK, code)
	}

	code, env := doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "ana-token", `{"homeScore":3,"awayScore":1}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "u-ana_1001", dataMap(t, env)["id"])

	code, _ = doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "ben-token", `{"homeScore":0,"awayScore":1}`)
	require.Equal(t, http.StatusOK, code)

	code, env = doRequest(t, router, http.MethodGet, "/v1/matches/1001/points", "ana-token", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, dataMap(t, env)["scored"])

	code, env = doRequest(t, router, http.MethodPut, "/v1/admin/matches/1001/result", "admin-token", `{"homeScore":2,"awayScore":0}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, dataMap(t, env)["predictionsScored"])

	code, env = doRequest(t, router, http.MethodGet, "/v1/matches/1001/points", "ana-token", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 15, dataMap(t, env)["points"])
	assert.Equal(t, string(scoring.TierGoalDifference), dataMap(t, env)["tier"])

	code, env = doRequest(t, router, http.MethodGet, "/v1/leaderboard", "", "")
	require.Equal(t, http.StatusOK, code)
	rows, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 3)
	first := rows[0].(map[string]any)
	assert.Equal(t, "u-ana", first["userId"])
	assert.EqualValues(t, 15, first["totalPoints"])
	last := rows[2].(map[string]any)
	assert.Equal(t, "u-ben", last["userId"])
	assert.EqualValues(t, -10, last["totalPoints"])

	code, env = doRequest(t, router, http.MethodPut, "/v1/matches/1001/prediction", "ana-token", `{"homeScore":2,"awayScore":0}`)
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "FAILED_PRECONDITION", env.Error["status"])

	code, env = doRequest(t, router, http.MethodGet, "/v1/matches/1001/result", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, dataMap(t, env)["homeScore"])
}

func TestRouter_AdminRoutesRejectPlayers(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodPost, "/v1/users/me", "ana-token", `{"displayName":"Ana"}`)
	require.Equal(t, http.StatusOK, code)

	code, env := doRequest(t, router, http.MethodPut, "/v1/admin/matches/1001/result", "ana-token", `{"homeScore":2,"awayScore":0}`)
	require.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "PERMISSION_DENIED", env.Error["status"])

	code, _ = doRequest(t, router, http.MethodPost, "/v1/admin/scoring/recompute", "ana-token", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doRequest(t, router, http.MethodPost, "/v1/admin/scoring/recompute", "admin-token", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_UserProfileLifecycle(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodGet, "/v1/users/me", "ana-token", "")
	require.Equal(t, http.StatusNotFound, code)

	code, env := doRequest(t, router, http.MethodPost, "/v1/users/me", "ana-token", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ana", dataMap(t, env)["displayName"])
	assert.EqualValues(t, 0, dataMap(t, env)["totalPoints"])

	code, env = doRequest(t, router, http.MethodPatch, "/v1/users/me", "ana-token", `{"displayName":"Ana Banana"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ana Banana", dataMap(t, env)["displayName"])
}

func TestRouter_InternalJobToken(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/recompute", "", "")
	require.Equal(t, http.StatusUnauthorized, code)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recompute", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LeaderboardRejectsBadLimit(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodGet, "/v1/leaderboard?limit=zero", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMapError_Statuses(t *testing.T) {
	cases := map[error]int{
		usecase.ErrInvalidInput:          http.StatusBadRequest,
		usecase.ErrUnauthorized:          http.StatusUnauthorized,
		usecase.ErrForbidden:             http.StatusForbidden,
		usecase.ErrNotFound:              http.StatusNotFound,
		usecase.ErrPredictionLocked:      http.StatusConflict,
		usecase.ErrDependencyUnavailable: http.StatusServiceUnavailable,
		fmt.Errorf("boom"):               http.StatusInternalServerError,
	}
	for err, want := range cases {
		got := mapError(context.Background(), fmt.Errorf("wrapped: %w", err)).HTTPStatus
		if got != want {
			t.Fatalf("mapError(%v)=%d want=%d", err, got, want)
		}
	}
}
