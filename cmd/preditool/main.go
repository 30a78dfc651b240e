// Command preditool administers a Predipto deployment from the terminal.
// It talks to the configured storage directly and shares the usecase layer
// with the API.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/riskibarqy/predipto/internal/app"
	"github.com/riskibarqy/predipto/internal/config"
	"github.com/riskibarqy/predipto/internal/platform/logging"
)

type toolContext struct {
	ctx      context.Context
	services *app.Services
	out      io.Writer
}

type globalCmd struct {
	Verbose bool `help:"Log storage and scoring activity to stderr."`
}

type commands struct {
	globalCmd

	Result struct {
		Record recordResultCmd `cmd:"" help:"Record the final score of a match and score its predictions."`
		Ls     lsResultsCmd    `cmd:"" help:"List recorded results."`
	} `cmd:""`

	Recompute   recomputeCmd   `cmd:"" help:"Rescore every recorded result and rebuild user totals."`
	Leaderboard leaderboardCmd `cmd:"" help:"Print the leaderboard."`

	Predictions struct {
		Ls lsPredictionsCmd `cmd:"" help:"List the predictions of a user with their points."`
	} `cmd:""`
}

var cli commands

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("preditool"),
		kong.Description("Administer Predipto results, scores and standings."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)

	level := logging.LevelWarn
	if cli.Verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Options{Level: level, Service: "preditool", Environment: cfg.AppEnv, Output: os.Stderr})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("memory storage is not shared with the API; changes are lost on exit")
	}

	repos, err := app.OpenRepositories(ctx, cfg, logger)
	kctx.FatalIfErrorf(err)
	defer func() { _ = repos.Close() }()

	tc := &toolContext{
		ctx:      ctx,
		services: app.NewServices(cfg, repos, logger),
		out:      os.Stdout,
	}
	kctx.FatalIfErrorf(kctx.Run(tc))
}
