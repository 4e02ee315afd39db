package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rakesh-Biswal/reminder-service/internal/config"
)

// TestTwilioSender_Send verifies the request shape against a stub API.
func TestTwilioSender_Send(t *testing.T) {
	t.Parallel()

	var gotPath, gotTo, gotFrom, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		gotPath = r.URL.Path
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "AC123", user)
		require.Equal(t, "token", pass)

		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	sender := NewTwilioSender(config.Twilio{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+12183097166",
		BaseURL:    srv.URL,
	}, time.Second)

	expiry := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	err := sender.Send(context.Background(), "+919876543210", ReminderExpired("Milk", expiry))
	require.NoError(t, err)

	require.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	require.Equal(t, "+919876543210", gotTo)
	require.Equal(t, "+12183097166", gotFrom)
	require.Contains(t, gotBody, "URGENT")
}

// TestTwilioSender_Failure ensures API errors surface to the caller.
func TestTwilioSender_Failure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	sender := NewTwilioSender(config.Twilio{
		AccountSID: "AC123",
		AuthToken:  "bad",
		FromNumber: "+12183097166",
		BaseURL:    srv.URL,
	}, time.Second)

	err := sender.Send(context.Background(), "+919876543210", ReminderDeleted("Milk"))
	require.Error(t, err)
}

// TestNoopSender ensures the fallback sender succeeds and still validates the template.
func TestNoopSender(t *testing.T) {
	t.Parallel()

	require.NoError(t, NoopSender{}.Send(context.Background(), "+919876543210", Welcome("Rakesh")))
	require.Error(t, NoopSender{}.Send(context.Background(), "+919876543210", Message{Kind: "bogus"}))
}
