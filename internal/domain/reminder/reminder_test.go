package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNew_Defaults verifies construction, UTC canonicalization and defaults.
func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("IST", 19800)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, time.March, 2, 17, 30, 0, 0, zone)

	r, err := New("USER_1", "  Milk  ", "one liter", "", expiry, now)
	require.NoError(t, err)

	require.True(t, len(r.ID) > len("REM_"))
	require.Equal(t, "Milk", r.Name)
	require.Equal(t, DefaultCategory, r.Category)
	require.Equal(t, StatusActive, r.Status)
	require.Equal(t, time.UTC, r.ExpiresAt.Location())
	require.Equal(t, expiry.UTC(), r.ExpiresAt)
	require.Equal(t, now, r.CreatedAt)
	require.Equal(t, now, r.UpdatedAt)
}

// TestNew_Validation covers required field errors.
func TestNew_Validation(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	_, err := New("", "Milk", "", "", now, now)
	require.ErrorIs(t, err, ErrOwnerRequired)

	_, err = New("USER_1", "   ", "", "", now, now)
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = New("USER_1", "Milk", "", "", time.Time{}, now)
	require.ErrorIs(t, err, ErrExpiryRequired)
}

// TestLapsedAt covers the candidate predicate at, before and after the boundary.
func TestLapsedAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	r := &Reminder{Status: StatusActive, ExpiresAt: now.Add(-time.Second)}
	require.True(t, r.LapsedAt(now))

	r.ExpiresAt = now
	require.True(t, r.LapsedAt(now), "expiry exactly at now is lapsed")

	r.ExpiresAt = now.Add(time.Second)
	require.False(t, r.LapsedAt(now))

	r.ExpiresAt = now.Add(-time.Hour)
	r.Status = StatusExpired
	require.False(t, r.LapsedAt(now), "already expired records are not candidates")

	r.Status = StatusCompleted
	require.False(t, r.LapsedAt(now), "completed records are never candidates")
}

// TestParseStatus verifies parsing and rejection of unknown values.
func TestParseStatus(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Status{
		"active":    StatusActive,
		" Expired ": StatusExpired,
		"COMPLETED": StatusCompleted,
	} {
		got, err := ParseStatus(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseStatus("archived")
	require.Error(t, err)
}

// TestCanTransition pins the legal status moves.
func TestCanTransition(t *testing.T) {
	t.Parallel()

	require.True(t, CanTransition(StatusActive, StatusExpired))
	require.True(t, CanTransition(StatusActive, StatusCompleted))

	require.False(t, CanTransition(StatusExpired, StatusActive))
	require.False(t, CanTransition(StatusExpired, StatusCompleted))
	require.False(t, CanTransition(StatusCompleted, StatusExpired))
	require.False(t, CanTransition(StatusActive, StatusActive))
}
