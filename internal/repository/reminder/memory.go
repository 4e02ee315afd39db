package reminder

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/reminder"
)

// MemoryRepository keeps reminder records in memory.
// It mirrors MongoRepository semantics and backs tests and local development.
type MemoryRepository struct {
	// mu protects concurrent access to records.
	mu sync.Mutex
	// records maps reminder ID to the stored record.
	records map[string]domain.Reminder
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]domain.Reminder),
	}
}

// Create inserts a new reminder record.
func (r *MemoryRepository) Create(_ context.Context, rec *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.ID] = *rec

	return nil
}

// Get returns the reminder with the provided identifier scoped to its owner.
func (r *MemoryRepository) Get(_ context.Context, id, ownerID string) (*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	return &rec, nil
}

// ListByOwner returns all reminders of the owner, newest first.
func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []domain.Reminder

	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// Update replaces the stored record, scoped to its owner.
func (r *MemoryRepository) Update(_ context.Context, rec *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.ID]
	if !ok || stored.OwnerID != rec.OwnerID {
		return ErrNotFound
	}

	r.records[rec.ID] = *rec

	return nil
}

// Delete removes the reminder with the provided identifier scoped to its owner.
func (r *MemoryRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return ErrNotFound
	}

	delete(r.records, id)

	return nil
}

// FindExpiredActive returns still-active reminders with an expiry at or
// before now, ordered by creation instant.
func (r *MemoryRepository) FindExpiredActive(_ context.Context, now time.Time) ([]domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []domain.Reminder

	for _, rec := range r.records {
		if rec.LapsedAt(now) {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}

		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

// MarkExpired flips the record to expired if it is still active.
func (r *MemoryRepository) MarkExpired(_ context.Context, id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.Status != domain.StatusActive {
		return false, nil
	}

	rec.Status = domain.StatusExpired
	rec.UpdatedAt = now.UTC()
	r.records[id] = rec

	return true, nil
}

// CountExpired returns how many reminders are currently in status expired.
func (r *MemoryRepository) CountExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64

	for _, rec := range r.records {
		if rec.Status == domain.StatusExpired {
			count++
		}
	}

	return count, nil
}
