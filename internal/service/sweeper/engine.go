package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakesh-Biswal/reminder-service/internal/clock"
	"github.com/Rakesh-Biswal/reminder-service/internal/domain/alarm"
	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/reminder"
	"github.com/Rakesh-Biswal/reminder-service/internal/logger"
	"github.com/Rakesh-Biswal/reminder-service/internal/notification"
)

// ReminderStore is the slice of the reminder repository the engine needs.
type ReminderStore interface {
	FindExpiredActive(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	MarkExpired(ctx context.Context, id string, now time.Time) (bool, error)
	CountExpired(ctx context.Context) (int64, error)
}

// DestinationResolver resolves an owner's SMS destination.
type DestinationResolver interface {
	FindNotificationDestination(ctx context.Context, id string) (string, error)
}

// FlagStore is the writable side of the alarm flag slot.
type FlagStore interface {
	Set(ctx context.Context, flag alarm.Flag) error
}

// DefaultOperationTimeout bounds each outbound call when none is configured.
const DefaultOperationTimeout = 5 * time.Second

// Stats summarizes one sweep for logging and tests.
type Stats struct {
	// Candidates is how many reminders the sweep selected.
	Candidates int
	// Transitioned is how many reminders were moved to expired.
	Transitioned int
	// NotFound is how many candidates vanished before the update,
	// e.g. deleted concurrently. Treated as success-no-op.
	NotFound int
	// NotificationsSent counts successful SMS deliveries.
	NotificationsSent int
	// NotificationsFailed counts failed or skipped SMS deliveries.
	NotificationsFailed int
	// TransitionFailures counts status updates that errored and will be
	// retried by the next sweep.
	TransitionFailures int
	// AlarmState is the aggregate flag value the sweep wrote.
	AlarmState alarm.State
}

// Engine orchestrates one reconciliation sweep over its collaborators.
type Engine struct {
	// clk supplies the single "now" reading per sweep.
	clk clock.Clock
	// reminders is the reminder record store.
	reminders ReminderStore
	// users resolves notification destinations.
	users DestinationResolver
	// sender delivers expiry notifications.
	sender notification.Sender
	// flags is the shared alarm flag slot. Only the engine writes it.
	flags FlagStore
	// opTimeout bounds each outbound call within a sweep.
	opTimeout time.Duration
}

// NewEngine wires the engine's collaborators.
func NewEngine(
	clk clock.Clock,
	reminders ReminderStore,
	users DestinationResolver,
	sender notification.Sender,
	flags FlagStore,
	opTimeout time.Duration,
) *Engine {
	if opTimeout <= 0 {
		opTimeout = DefaultOperationTimeout
	}

	return &Engine{
		clk:       clk,
		reminders: reminders,
		users:     users,
		sender:    sender,
		flags:     flags,
		opTimeout: opTimeout,
	}
}

// InitFlag writes the expired state into the slot. The scheduler calls it
// once at process start so the buzzer is silent before the first sweep.
func (e *Engine) InitFlag(ctx context.Context) error {
	bctx, cancel := e.bound(ctx)
	defer cancel()

	if err := e.flags.Set(bctx, alarm.Flag{State: alarm.StateExpired, UpdatedAt: e.clk.Now()}); err != nil {
		return fmt.Errorf("initialize alarm flag: %w", err)
	}

	return nil
}

// RunSweep executes one reconciliation pass.
//
// An error is returned only when the candidate query fails; the flag is left
// untouched in that case. Every per-candidate failure is recorded in Stats
// and never escapes.
func (e *Engine) RunSweep(ctx context.Context) (Stats, error) {
	var stats Stats

	now := e.clk.Now()

	qctx, cancel := e.bound(ctx)
	candidates, err := e.reminders.FindExpiredActive(qctx, now)

	cancel()

	if err != nil {
		return stats, fmt.Errorf("query expired reminders: %w", err)
	}

	stats.Candidates = len(candidates)

	for i := range candidates {
		// Shutting down: the current candidate finished cleanly, the
		// rest is picked up by the next process start.
		if ctx.Err() != nil {
			break
		}

		e.processCandidate(ctx, &candidates[i], now, &stats)
	}

	stats.AlarmState = e.aggregateState(ctx, stats.Transitioned > 0)
	e.writeFlag(ctx, stats.AlarmState, now)

	return stats, nil
}

// processCandidate notifies the owner and transitions one reminder.
// Notification failure never prevents the status transition.
func (e *Engine) processCandidate(ctx context.Context, r *domain.Reminder, now time.Time, stats *Stats) {
	e.notifyOwner(ctx, r, stats)

	uctx, cancel := e.bound(ctx)
	updated, err := e.reminders.MarkExpired(uctx, r.ID, now)

	cancel()

	switch {
	case err != nil:
		// Left active on purpose, the next sweep re-selects it.
		stats.TransitionFailures++

		logger.ErrorKV(ctx, "Reminder transition failed",
			"reminder_id", r.ID, "error", err)
	case !updated:
		// Deleted or resolved concurrently, nothing to do.
		stats.NotFound++

		logger.DebugKV(ctx, "Reminder vanished before transition", "reminder_id", r.ID)
	default:
		stats.Transitioned++

		logger.InfoKV(ctx, "Reminder expired",
			"reminder_id", r.ID, "name", r.Name, "expires_at", r.ExpiresAt)
	}
}

// notifyOwner resolves the destination and attempts one SMS delivery.
func (e *Engine) notifyOwner(ctx context.Context, r *domain.Reminder, stats *Stats) {
	lctx, cancel := e.bound(ctx)
	destination, err := e.users.FindNotificationDestination(lctx, r.OwnerID)

	cancel()

	if err != nil {
		stats.NotificationsFailed++

		logger.WarnKV(ctx, "No notification destination",
			"reminder_id", r.ID, "owner_id", r.OwnerID, "error", err)

		return
	}

	sctx, cancel := e.bound(ctx)
	err = e.sender.Send(sctx, destination, notification.ReminderExpired(r.Name, r.ExpiresAt))

	cancel()

	if err != nil {
		stats.NotificationsFailed++

		logger.ErrorKV(ctx, "Expiry notification failed",
			"reminder_id", r.ID, "destination", destination, "error", err)

		return
	}

	stats.NotificationsSent++
}

// aggregateState computes the flag value for this sweep: active iff any
// reminder is currently expired. When the count is unavailable it falls
// back to whether this sweep transitioned anything.
func (e *Engine) aggregateState(ctx context.Context, anyNewlyExpired bool) alarm.State {
	cctx, cancel := e.bound(ctx)
	count, err := e.reminders.CountExpired(cctx)

	cancel()

	if err != nil {
		logger.WarnKV(ctx, "Expired count unavailable, using sweep outcome", "error", err)

		if anyNewlyExpired {
			return alarm.StateActive
		}

		return alarm.StateExpired
	}

	if count > 0 {
		return alarm.StateActive
	}

	return alarm.StateExpired
}

// writeFlag stores the aggregate state. Failures are recorded only: the
// slot is last-write-wins and the next sweep repairs it.
func (e *Engine) writeFlag(ctx context.Context, state alarm.State, now time.Time) {
	fctx, cancel := e.bound(ctx)
	defer cancel()

	if err := e.flags.Set(fctx, alarm.Flag{State: state, UpdatedAt: now}); err != nil {
		logger.ErrorKV(ctx, "Alarm flag write failed", "state", string(state), "error", err)
	}
}

// bound derives a context with the per-operation timeout. A canceled parent
// still yields a usable deadline so an in-flight candidate can finish.
func (e *Engine) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}

	return context.WithTimeout(ctx, e.opTimeout)
}
