package reminder

import (
	"context"
	"errors"
	"time"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/reminder"
)

// ErrNotFound is returned when no reminder matches the requested identifier.
var ErrNotFound = errors.New("reminder not found")

// Repository defines persistence operations for reminder records.
//
// FindExpiredActive and MarkExpired serve the sweep engine; the remaining
// operations serve the HTTP surface. MarkExpired only flips records that are
// still active, so a record can be transitioned by at most one sweep.
type Repository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	Get(ctx context.Context, id, ownerID string) (*domain.Reminder, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Reminder, error)
	Update(ctx context.Context, r *domain.Reminder) error
	Delete(ctx context.Context, id, ownerID string) error

	FindExpiredActive(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	MarkExpired(ctx context.Context, id string, now time.Time) (bool, error)
	CountExpired(ctx context.Context) (int64, error)
}
