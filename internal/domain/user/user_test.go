package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNew verifies field normalization and validation.
func TestNew(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	u, err := New(" Rakesh ", " Rakesh@Example.com ", []byte("hash"), "9876543210", now)
	require.NoError(t, err)
	require.Equal(t, "Rakesh", u.Name)
	require.Equal(t, "rakesh@example.com", u.Email)
	require.Equal(t, "+919876543210", u.Phone)
	require.True(t, len(u.ID) > len("USER_"))

	_, err = New("", "a@b.c", nil, "", now)
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = New("Rakesh", "  ", nil, "", now)
	require.ErrorIs(t, err, ErrEmailRequired)
}

// TestNormalizePhone covers prefixing rules.
func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", NormalizePhone("  "))
	require.Equal(t, "+919876543210", NormalizePhone("9876543210"))
	require.Equal(t, "+15551234567", NormalizePhone("+15551234567"))
}
