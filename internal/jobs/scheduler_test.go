package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReconciler struct {
	calls atomic.Int32
	err   error
}

func (r *countingReconciler) RecomputeAll(context.Context, usecase.RecomputeOptions) (usecase.RecomputeReport, error) {
	r.calls.Add(1)
	return usecase.RecomputeReport{UsersUpdated: 2}, r.err
}

func TestScheduler_StartRejectsInvalidSpec(t *testing.T) {
	s := NewScheduler(&countingReconciler{}, logging.NewNop())

	err := s.Start(context.Background(), "every now and then")
	require.Error(t, err)
}

func TestScheduler_EmptySpecIsIdle(t *testing.T) {
	s := NewScheduler(&countingReconciler{}, logging.NewNop())

	require.NoError(t, s.Start(context.Background(), "  "))
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}

func TestScheduler_RegistersReconcileJob(t *testing.T) {
	s := NewScheduler(&countingReconciler{}, logging.NewNop())

	require.NoError(t, s.Start(context.Background(), "*/5 * * * *"))
	defer s.Stop()
	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_RunReconcile(t *testing.T) {
	reconciler := &countingReconciler{}
	s := NewScheduler(reconciler, logging.NewNop())

	s.runReconcile(context.Background())
	assert.EqualValues(t, 1, reconciler.calls.Load())

	reconciler.err = errors.New("store offline")
	s.runReconcile(context.Background())
	assert.EqualValues(t, 2, reconciler.calls.Load())
}

func TestScheduler_RunReconcileSkipsAfterShutdown(t *testing.T) {
	reconciler := &countingReconciler{}
	s := NewScheduler(reconciler, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.runReconcile(ctx)
	assert.EqualValues(t, 0, reconciler.calls.Load())
}
