package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/predipto/internal/app"
	"github.com/riskibarqy/predipto/internal/config"
	"github.com/riskibarqy/predipto/internal/jobs"
	"github.com/riskibarqy/predipto/internal/observability"
	"github.com/riskibarqy/predipto/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Service:     cfg.ServiceName,
		Environment: cfg.AppEnv,
	})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	stack, err := observability.Setup(cfg, logger)
	if err != nil {
		logger.Error("init observability", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := app.OpenRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("open storage", "error", err)
		os.Exit(1)
	}
	services := app.NewServices(cfg, repos, logger)

	srv, err := app.NewHTTPServer(cfg, services, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	scheduler := jobs.NewScheduler(services.Scoring, logger)
	if err := scheduler.Start(ctx, cfg.JobReconcileCron); err != nil {
		logger.Error("start job scheduler", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scheduler.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := repos.Close(); err != nil {
		logger.Warn("close storage failed", "error", err)
	}
	if err := stack.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown observability failed", "error", err)
	}

	logger.Info("http server stopped")
}
