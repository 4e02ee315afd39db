package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/Rakesh-Biswal/reminder-service/internal/logger"
)

// Runner is the sweep entrypoint the scheduler drives.
type Runner interface {
	InitFlag(ctx context.Context) error
	RunSweep(ctx context.Context) (Stats, error)
}

// errIntervalRequired is returned when the scheduler has no positive cadence.
var errIntervalRequired = errors.New("sweep interval must be positive")

// Scheduler triggers sweeps on a fixed cadence from a single goroutine,
// so two sweeps can never overlap. A tick arriving while a sweep is still
// running is coalesced by the ticker, not queued.
type Scheduler struct {
	// runner executes the sweeps.
	runner Runner
	// interval is the sweep cadence.
	interval time.Duration
	// startupDelay is waited before the first sweep so collaborators
	// finish initializing.
	startupDelay time.Duration
}

// NewScheduler creates a scheduler over the provided runner.
func NewScheduler(runner Runner, interval, startupDelay time.Duration) *Scheduler {
	return &Scheduler{
		runner:       runner,
		interval:     interval,
		startupDelay: startupDelay,
	}
}

// Run blocks driving sweeps until the context is canceled: one sweep after
// the startup grace delay, then one per interval.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return errIntervalRequired
	}

	logger.InfoKV(ctx, "Sweep scheduler started",
		"interval", s.interval.String(), "startup_delay", s.startupDelay.String())

	if s.startupDelay > 0 {
		grace := time.NewTimer(s.startupDelay)

		select {
		case <-ctx.Done():
			grace.Stop()
			return nil
		case <-grace.C:
		}
	}

	// The flag starts silent; the first sweep recomputes it right after.
	if err := s.runner.InitFlag(ctx); err != nil {
		logger.ErrorKV(ctx, "Alarm flag initialization failed", "error", err)
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Sweep scheduler stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one pass and logs its outcome. A failed sweep is skipped for
// this tick; the next tick proceeds normally.
func (s *Scheduler) sweep(ctx context.Context) {
	stats, err := s.runner.RunSweep(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Sweep failed", "error", err)
		return
	}

	logger.InfoKV(ctx, "Sweep completed",
		"candidates", stats.Candidates,
		"transitioned", stats.Transitioned,
		"not_found", stats.NotFound,
		"notifications_sent", stats.NotificationsSent,
		"notifications_failed", stats.NotificationsFailed,
		"transition_failures", stats.TransitionFailures,
		"alarm_state", string(stats.AlarmState))
}
