package user

import (
	"context"
	"errors"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/user"
)

var (
	// ErrNotFound is returned when no account matches the request.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an account with the email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNoDestination is returned when the account has no SMS destination.
	ErrNoDestination = errors.New("user has no notification destination")
)

// Repository defines persistence operations for account records.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindNotificationDestination resolves the SMS destination of the
	// account, returning ErrNoDestination when none is on file.
	FindNotificationDestination(ctx context.Context, id string) (string, error)
}
