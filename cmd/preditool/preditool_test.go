package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/riskibarqy/predipto/internal/app"
	"github.com/riskibarqy/predipto/internal/config"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTool(t *testing.T) (*toolContext, *bytes.Buffer) {
	t.Helper()

	ctx := context.Background()
	cfg := config.Config{
		AppEnv:               config.EnvDev,
		StorageDriver:        config.StorageMemory,
		ScoreMin:             0,
		ScoreMax:             99,
		ScoringWorkers:       2,
		LeaderboardCacheTTL:  time.Minute,
		FootballDataCacheTTL: time.Minute,
	}
	logger := logging.NewNop()

	repos, err := app.OpenRepositories(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NoError(t, repos.Users.Create(ctx, user.Profile{UserID: "admin", Email: "admin@predipto.app", DisplayName: "admin", IsAdmin: true}))

	services := app.NewServices(cfg, repos, logger)
	for _, p := range []user.Principal{
		{UserID: "u-1", Email: "ana@example.com"},
		{UserID: "u-2", Email: "budi@example.com"},
	} {
		_, err := services.Users.Register(ctx, p, "")
		require.NoError(t, err)
	}
	_, err = services.Predictions.Save(ctx, usecase.SavePredictionInput{UserID: "u-1", MatchID: 1001, HomeScore: 2, AwayScore: 1})
	require.NoError(t, err)
	_, err = services.Predictions.Save(ctx, usecase.SavePredictionInput{UserID: "u-2", MatchID: 1001, HomeScore: 0, AwayScore: 2})
	require.NoError(t, err)
	_, err = services.Predictions.Save(ctx, usecase.SavePredictionInput{UserID: "u-1", MatchID: 1002, HomeScore: 1, AwayScore: 1})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &toolContext{ctx: ctx, services: services, out: out}, out
}

func runTool(t *testing.T, tc *toolContext, args ...string) error {
	t.Helper()

	var c commands
	parser, err := kong.New(&c, kong.Name("preditool"), kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(tc)
}

func TestRecordResult_ScoresAndPrintsTierCounts(t *testing.T) {
	tc, out := newTestTool(t)

	err := runTool(t, tc, "result", "record", "--as=admin", "1001", "2", "1")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "match 1001 recorded as 2-1")
	assert.Contains(t, out.String(), "EXACT")

	profile, err := tc.services.Users.Get(tc.ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 20, profile.TotalPoints)

	profile, err = tc.services.Users.Get(tc.ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, -10, profile.TotalPoints)
}

func TestRecordResult_RejectsNonAdmin(t *testing.T) {
	tc, _ := newTestTool(t)

	err := runTool(t, tc, "result", "record", "--as=u-1", "1001", "2", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestRecompute_IsIdempotent(t *testing.T) {
	tc, out := newTestTool(t)
	require.NoError(t, runTool(t, tc, "result", "record", "--as=admin", "1001", "3", "2"))
	require.NoError(t, runTool(t, tc, "result", "record", "--as=admin", "1002", "0", "0"))

	out.Reset()
	require.NoError(t, runTool(t, tc, "recompute", "--no-progress"))
	require.NoError(t, runTool(t, tc, "recompute", "--no-progress"))
	assert.Contains(t, out.String(), "rescored 2 match(es)")

	// 3-2 vs 2-1 is a goal-difference hit, 0-0 vs 1-1 as well.
	profile, err := tc.services.Users.Get(tc.ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 30, profile.TotalPoints)
}

func TestLeaderboardAndPredictionTables(t *testing.T) {
	tc, out := newTestTool(t)
	require.NoError(t, runTool(t, tc, "result", "record", "--as=admin", "1001", "2", "1"))

	out.Reset()
	require.NoError(t, runTool(t, tc, "leaderboard", "--limit=3"))
	board := out.String()
	assert.Contains(t, board, "ana")
	assert.Contains(t, board, "budi")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("ana")), bytes.Index(out.Bytes(), []byte("budi")))

	out.Reset()
	require.NoError(t, runTool(t, tc, "predictions", "ls", "u-1"))
	assert.Contains(t, out.String(), "EXACT")
	assert.Contains(t, out.String(), "pending")

	out.Reset()
	require.NoError(t, runTool(t, tc, "result", "ls"))
	assert.Contains(t, out.String(), "2-1")
	assert.Contains(t, out.String(), "admin")
}
