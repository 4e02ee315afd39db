// Package user defines the account record owning reminders and the
// normalization of its SMS destination.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCountryPrefix is prepended to phone numbers supplied without one.
const DefaultCountryPrefix = "+91"

var (
	// ErrNameRequired is returned when an account has no name.
	ErrNameRequired = errors.New("user name is required")
	// ErrEmailRequired is returned when an account has no email.
	ErrEmailRequired = errors.New("user email is required")
)

// User is an account that owns reminders.
type User struct {
	// ID is the opaque unique identifier.
	ID string `bson:"_id" json:"id"`
	// Name is the display name.
	Name string `bson:"name" json:"name"`
	// Email identifies the account at signin.
	Email string `bson:"email" json:"email"`
	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash []byte `bson:"password_hash" json:"-"`
	// Phone is the SMS destination in E.164 form, empty when unknown.
	Phone string `bson:"phone" json:"phone"`
	// CreatedAt is when the account was created, in UTC.
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// New builds an account record with a normalized phone number.
func New(name, email string, passwordHash []byte, phone string, now time.Time) (*User, error) {
	u := &User{
		ID:           NewID(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Phone:        NormalizePhone(phone),
		CreatedAt:    now.UTC(),
	}

	if u.Name == "" {
		return nil, ErrNameRequired
	}

	if u.Email == "" {
		return nil, ErrEmailRequired
	}

	return u, nil
}

// NewID generates an opaque user identifier.
func NewID() string {
	return "USER_" + uuid.NewString()
}

// NormalizePhone trims the number and prepends the default country prefix
// when no explicit one is present. Empty input stays empty.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	if !strings.HasPrefix(phone, "+") {
		return DefaultCountryPrefix + phone
	}

	return phone
}
