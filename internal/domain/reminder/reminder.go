package reminder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status describes where a reminder is in its lifecycle.
type Status string

const (
	// StatusActive means the reminder has not lapsed yet.
	StatusActive Status = "active"
	// StatusExpired means the expiry instant has passed and the sweep recorded it.
	StatusExpired Status = "expired"
	// StatusCompleted means the owner resolved the reminder before or after expiry.
	StatusCompleted Status = "completed"
)

// DefaultCategory is assigned when the owner does not pick one.
const DefaultCategory = "General"

var (
	// ErrNameRequired is returned when a reminder has no name.
	ErrNameRequired = errors.New("reminder name is required")
	// ErrOwnerRequired is returned when a reminder has no owner.
	ErrOwnerRequired = errors.New("reminder owner is required")
	// ErrExpiryRequired is returned when a reminder has no expiry instant.
	ErrExpiryRequired = errors.New("reminder expiry instant is required")
)

// Reminder is a user-owned record with an expiry instant.
// All instants are stored in UTC; callers canonicalize before construction.
type Reminder struct {
	// ID is the opaque unique identifier, immutable after creation.
	ID string `bson:"_id" json:"id"`
	// OwnerID references the owning user record, immutable after creation.
	OwnerID string `bson:"owner_id" json:"ownerId"`
	// Name is display text carried into notifications.
	Name string `bson:"name" json:"name"`
	// Description is optional display text.
	Description string `bson:"description" json:"description"`
	// Category is a free-form grouping label.
	Category string `bson:"category" json:"category"`
	// ExpiresAt is the instant the reminder lapses, in UTC.
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
	// Status is the lifecycle state, see Status constants.
	Status Status `bson:"status" json:"status"`
	// CreatedAt is when the record was created, in UTC.
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	// UpdatedAt is refreshed whenever the record changes.
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// New builds an active reminder owned by ownerID, canonicalizing instants to UTC.
func New(ownerID, name, description, category string, expiresAt, now time.Time) (*Reminder, error) {
	r := &Reminder{
		ID:          NewID(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Category:    category,
		ExpiresAt:   expiresAt.UTC(),
		Status:      StatusActive,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	if r.Category == "" {
		r.Category = DefaultCategory
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// NewID generates an opaque reminder identifier.
func NewID() string {
	return "REM_" + uuid.NewString()
}

// Validate checks required fields.
func (r *Reminder) Validate() error {
	if r.OwnerID == "" {
		return ErrOwnerRequired
	}

	if r.Name == "" {
		return ErrNameRequired
	}

	if r.ExpiresAt.IsZero() {
		return ErrExpiryRequired
	}

	return nil
}

// LapsedAt reports whether the reminder should be selected by a sweep
// reading the clock at now: still active with an expiry at or before now.
func (r *Reminder) LapsedAt(now time.Time) bool {
	return r.Status == StatusActive && !r.ExpiresAt.After(now)
}

// ParseStatus converts string input to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusExpired:
		return StatusExpired, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown reminder status %q", s)
	}
}

// CanTransition reports whether moving from to next is a legal status change.
// The engine only ever performs active to expired; owners may additionally
// complete an active reminder. Terminal states never move.
func CanTransition(from, to Status) bool {
	if from != StatusActive {
		return false
	}

	return to == StatusExpired || to == StatusCompleted
}
