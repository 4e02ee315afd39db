package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestRender covers each message kind and the rejection of unknown kinds.
func TestRender(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	body, err := Welcome("Rakesh").Render()
	require.NoError(t, err)
	require.Contains(t, body, "Welcome Rakesh!")

	body, err = ReminderCreated("Milk", expiry).Render()
	require.NoError(t, err)
	require.Contains(t, body, `"Milk"`)
	require.Contains(t, body, "01 Mar 2025 12:00 UTC")

	body, err = ReminderExpired("Milk", expiry).Render()
	require.NoError(t, err)
	require.Contains(t, body, "URGENT")
	require.Contains(t, body, "01 Mar 2025 12:00 UTC")

	body, err = ReminderDeleted("Milk").Render()
	require.NoError(t, err)
	require.Contains(t, body, "removed from your tracking list")

	_, err = Message{Kind: Kind("carrier_pigeon")}.Render()
	require.Error(t, err)
}

// TestFormatExpiry ensures display instants are canonicalized to UTC.
func TestFormatExpiry(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("IST", 19800)
	got := FormatExpiry(time.Date(2025, time.March, 1, 17, 30, 0, 0, zone))
	require.Equal(t, "01 Mar 2025 12:00 UTC", got)
}
