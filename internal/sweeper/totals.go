package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/adapter"
	"github.com/sosiol/sosiol/internal/logger"
	"github.com/sosiol/sosiol/internal/metrics"
)

const DEFAULT_TOTALS_INTERVAL = 10 * time.Minute

// TotalsReconciler recomputes denormalized creator totals
//
//go:generate mockgen -source=totals.go -destination=../mocks/totals_reconciler.go -package=mocks -mock_names=TotalsReconciler=MockTotalsReconciler
type TotalsReconciler interface {
	// ReconcileCreatorTotals returns the number of creators corrected
	ReconcileCreatorTotals(ctx context.Context) (int64, error)
}

// TotalsSweeperConfig holds configuration for the totals sweeper
type TotalsSweeperConfig struct {
	Interval time.Duration // Time to sleep between reconciliation runs
}

// totalsSweeper implements the Sweeper interface for creator total reconciliation
type totalsSweeper struct {
	config     TotalsSweeperConfig
	reconciler TotalsReconciler
	clock      adapter.Clock
	metrics    *metrics.Metrics
	running    atomic.Bool
	stopChan   chan struct{}
	stoppedCh  chan struct{}
}

// NewTotalsSweeper creates a sweeper that keeps every creator's total equal to the sum of
// their completed tips
func NewTotalsSweeper(config TotalsSweeperConfig, reconciler TotalsReconciler, clock adapter.Clock, m *metrics.Metrics) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_TOTALS_INTERVAL
	}
	return &totalsSweeper{
		config:     config,
		reconciler: reconciler,
		clock:      clock,
		metrics:    m,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *totalsSweeper) Name() string {
	return "totals-sweeper"
}

// Start runs a reconciliation immediately and then once per interval until stopped
func (s *totalsSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting totals sweeper", zap.Duration("interval", s.config.Interval))

	for {
		s.runCycle(ctx)

		if !s.sleep(ctx, s.config.Interval) {
			logger.InfoCtx(ctx, "Totals sweeper stopping")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *totalsSweeper) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Totals sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Totals sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCycle runs a single reconciliation. Failures are logged and retried next cycle.
func (s *totalsSweeper) runCycle(ctx context.Context) {
	startTime := s.clock.Now()

	updated, err := s.reconciler.ReconcileCreatorTotals(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to reconcile creator totals: %w", err))
		}
		return
	}

	s.metrics.TotalsReconciled(updated)

	fields := []zap.Field{
		zap.Int64("updated", updated),
		zap.Duration("duration", s.clock.Since(startTime)),
	}
	if updated > 0 {
		logger.WarnCtx(ctx, "Corrected drifted creator totals", fields...)
	} else {
		logger.DebugCtx(ctx, "Creator totals consistent", fields...)
	}
}

// sleep returns false when interrupted by cancellation or a stop request
func (s *totalsSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
