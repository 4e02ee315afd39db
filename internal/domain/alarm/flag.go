// Package alarm defines the shared alarm flag value.
//
// The flag is a single global slot, not per-user or per-reminder. It is
// written only by the sweep engine with last-write-wins semantics and read
// by display surfaces and the buzzer client.
package alarm

import (
	"fmt"
	"strings"
	"time"
)

// State is the alarm flag value.
type State string

const (
	// StateActive means at least one reminder is currently expired and the buzzer should sound.
	StateActive State = "active"
	// StateExpired means no reminder is currently alerting.
	StateExpired State = "expired"
)

// Flag is the alarm slot content: the state plus bookkeeping.
type Flag struct {
	// State is the current alarm signal.
	State State `json:"status"`
	// UpdatedAt is when the slot was last written, in UTC.
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParseState converts string input to a State.
func ParseState(s string) (State, error) {
	switch State(strings.ToLower(strings.TrimSpace(s))) {
	case StateActive:
		return StateActive, nil
	case StateExpired:
		return StateExpired, nil
	default:
		return "", fmt.Errorf("unknown alarm state %q", s)
	}
}
