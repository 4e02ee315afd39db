package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/user"
)

// TestMemoryRepository covers account creation, lookup and destination resolution.
func TestMemoryRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Now().UTC()

	u, err := domain.New("Rakesh", "rakesh@example.com", []byte("hash"), "9876543210", now)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	// Duplicate email is rejected.
	dup, err := domain.New("Other", "rakesh@example.com", nil, "", now)
	require.NoError(t, err)
	require.ErrorIs(t, repo.Create(ctx, dup), ErrEmailTaken)

	got, err := repo.FindByEmail(ctx, "rakesh@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	got, err = repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	_, err = repo.FindByID(ctx, "USER_missing")
	require.ErrorIs(t, err, ErrNotFound)

	dest, err := repo.FindNotificationDestination(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "+919876543210", dest)
}

// TestMemoryRepository_NoDestination ensures accounts without a phone yield ErrNoDestination.
func TestMemoryRepository_NoDestination(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := domain.New("Rakesh", "rakesh@example.com", nil, "", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	_, err = repo.FindNotificationDestination(ctx, u.ID)
	require.ErrorIs(t, err, ErrNoDestination)
}
