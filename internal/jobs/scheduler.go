// Package jobs runs the in-process periodic tasks of the API.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/robfig/cron/v3"
)

// Reconciler rebuilds every points row and user total from the stored results.
type Reconciler interface {
	RecomputeAll(ctx context.Context, opts usecase.RecomputeOptions) (usecase.RecomputeReport, error)
}

type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	timeout    time.Duration
	logger     *logging.Logger
}

func NewScheduler(reconciler Reconciler, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		reconciler: reconciler,
		timeout:    10 * time.Minute,
		logger:     logger,
	}
}

// Start registers the reconcile job on spec and starts the cron loop. An empty
// spec leaves the scheduler idle.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		s.logger.Info("reconcile job disabled", "reason", "JOB_RECONCILE_CRON empty")
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.runReconcile(ctx) }); err != nil {
		return fmt.Errorf("register reconcile job spec=%q: %w", spec, err)
	}

	s.cron.Start()
	s.logger.Info("job scheduler started", "reconcile_cron", spec)
	return nil
}

func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	<-done.Done()
	s.logger.Info("job scheduler stopped")
}

func (s *Scheduler) runReconcile(parent context.Context) {
	if parent.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	report, err := s.reconciler.RecomputeAll(ctx, usecase.RecomputeOptions{})
	if err != nil {
		s.logger.ErrorContext(ctx, "reconcile job failed", "error", err)
		return
	}

	s.logger.InfoContext(ctx, "reconcile job completed",
		"matches", len(report.Matches),
		"users_updated", report.UsersUpdated,
		"duration_ms", report.DurationMs,
	)
}
