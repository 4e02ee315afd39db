package alarmflag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Rakesh-Biswal/reminder-service/internal/domain/alarm"
)

// SlotPath is the Realtime Database node holding the flag.
const SlotPath = "buzzerFlag"

// FirebaseRepository stores the alarm flag in a Firebase Realtime Database
// through its REST representation. The buzzer hardware polls the same node.
type FirebaseRepository struct {
	// baseURL is the database root, e.g. https://project.firebaseio.com.
	baseURL string
	// client performs the REST calls.
	client *http.Client
}

// NewFirebaseRepository creates a repository over the database at baseURL.
// The per-request timeout bounds every Set and Get.
func NewFirebaseRepository(baseURL string, timeout time.Duration) *FirebaseRepository {
	return &FirebaseRepository{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// slotURL returns the REST endpoint of the flag node.
func (r *FirebaseRepository) slotURL() string {
	return r.baseURL + "/" + SlotPath + ".json"
}

// Set overwrites the slot with the provided flag.
func (r *FirebaseRepository) Set(ctx context.Context, flag alarm.Flag) error {
	body, err := json.Marshal(flag)
	if err != nil {
		return fmt.Errorf("encode alarm flag: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.slotURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build alarm flag request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("set alarm flag: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("set alarm flag: unexpected status %s", resp.Status)
	}

	return nil
}

// Get reads the slot. A node that was never written decodes as JSON null,
// which is reported as ErrNotFound.
func (r *FirebaseRepository) Get(ctx context.Context) (alarm.Flag, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.slotURL(), nil)
	if err != nil {
		return alarm.Flag{}, fmt.Errorf("build alarm flag request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return alarm.Flag{}, fmt.Errorf("get alarm flag: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return alarm.Flag{}, fmt.Errorf("get alarm flag: unexpected status %s", resp.Status)
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return alarm.Flag{}, fmt.Errorf("read alarm flag response: %w", err)
	}

	if string(bytes.TrimSpace(contents)) == "null" {
		return alarm.Flag{}, ErrNotFound
	}

	var flag alarm.Flag
	if err := json.Unmarshal(contents, &flag); err != nil {
		return alarm.Flag{}, fmt.Errorf("decode alarm flag response: %w", err)
	}

	return flag, nil
}
