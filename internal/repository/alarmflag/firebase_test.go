package alarmflag

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rakesh-Biswal/reminder-service/internal/domain/alarm"
)

// rtdbStub mimics the Realtime Database REST slot: PUT overwrites, GET
// returns the stored document or JSON null.
type rtdbStub struct {
	mu   sync.Mutex
	body []byte
}

func (s *rtdbStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Path != "/"+SlotPath+".json" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		buf, _ := io.ReadAll(r.Body)
		s.body = buf

		_, _ = w.Write(buf)
	case http.MethodGet:
		if s.body == nil {
			_, _ = w.Write([]byte("null"))
			return
		}

		_, _ = w.Write(s.body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// TestFirebaseRepository_SetGet covers the REST roundtrip against a stub database.
func TestFirebaseRepository_SetGet(t *testing.T) {
	t.Parallel()

	stub := &rtdbStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	repo := NewFirebaseRepository(srv.URL+"/", time.Second)

	// Empty slot reads as not found.
	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	want := alarm.Flag{
		State:     alarm.StateActive,
		UpdatedAt: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Set(context.Background(), want))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, want.State, got.State)

	// The stored representation carries the status string the buzzer polls.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(stub.body, &raw))
	require.Equal(t, "active", raw["status"])
}

// TestFirebaseRepository_ServerError ensures non-200 responses surface as errors.
func TestFirebaseRepository_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	repo := NewFirebaseRepository(srv.URL, time.Second)

	require.Error(t, repo.Set(context.Background(), alarm.Flag{State: alarm.StateExpired}))

	_, err := repo.Get(context.Background())
	require.Error(t, err)
}
