package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/reminder"
)

func newTestReminder(t *testing.T, owner string, expiresAt, now time.Time) *domain.Reminder {
	t.Helper()

	r, err := domain.New(owner, "Milk", "", "", expiresAt, now)
	require.NoError(t, err)

	return r
}

// TestMemoryRepository_CRUD covers create, get, update and delete with owner scoping.
func TestMemoryRepository_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	rec := newTestReminder(t, "USER_1", now.Add(time.Hour), now)
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, rec.ID, "USER_1")
	require.NoError(t, err)
	require.Equal(t, rec.Name, got.Name)

	_, err = repo.Get(ctx, rec.ID, "USER_2")
	require.ErrorIs(t, err, ErrNotFound, "foreign owner must not see the record")

	rec.Description = "one liter"
	require.NoError(t, repo.Update(ctx, rec))

	got, err = repo.Get(ctx, rec.ID, "USER_1")
	require.NoError(t, err)
	require.Equal(t, "one liter", got.Description)

	require.ErrorIs(t, repo.Delete(ctx, rec.ID, "USER_2"), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, rec.ID, "USER_1"))
	require.ErrorIs(t, repo.Delete(ctx, rec.ID, "USER_1"), ErrNotFound)
}

// TestMemoryRepository_FindExpiredActive verifies the candidate query and its ordering.
func TestMemoryRepository_FindExpiredActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	older := newTestReminder(t, "USER_1", now.Add(-time.Hour), now.Add(-2*time.Hour))
	newer := newTestReminder(t, "USER_1", now, now.Add(-time.Hour))
	future := newTestReminder(t, "USER_1", now.Add(time.Minute), now)
	completed := newTestReminder(t, "USER_1", now.Add(-time.Hour), now)
	completed.Status = domain.StatusCompleted

	for _, rec := range []*domain.Reminder{newer, older, future, completed} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	candidates, err := repo.FindExpiredActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, older.ID, candidates[0].ID, "creation order must be preserved")
	require.Equal(t, newer.ID, candidates[1].ID)
}

// TestMemoryRepository_MarkExpired verifies the guarded transition and the not-found no-op.
func TestMemoryRepository_MarkExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	rec := newTestReminder(t, "USER_1", now.Add(-time.Minute), now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, rec))

	updated, err := repo.MarkExpired(ctx, rec.ID, now)
	require.NoError(t, err)
	require.True(t, updated)

	got, err := repo.Get(ctx, rec.ID, "USER_1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusExpired, got.Status)
	require.Equal(t, now, got.UpdatedAt)

	// A second attempt is a no-op: the record is no longer active.
	updated, err = repo.MarkExpired(ctx, rec.ID, now.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, updated)

	// Unknown identifiers are a benign no-op as well.
	updated, err = repo.MarkExpired(ctx, "REM_missing", now)
	require.NoError(t, err)
	require.False(t, updated)

	count, err := repo.CountExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
