package user

import (
	"context"
	"sync"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/user"
)

// MemoryRepository keeps account records in memory.
// It mirrors MongoRepository semantics and backs tests and local development.
type MemoryRepository struct {
	// mu protects concurrent access to records.
	mu sync.Mutex
	// records maps user ID to the stored account.
	records map[string]domain.User
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]domain.User),
	}
}

// Create inserts a new account, rejecting duplicate emails.
func (r *MemoryRepository) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.records {
		if stored.Email == u.Email {
			return ErrEmailTaken
		}
	}

	r.records[u.ID] = *u

	return nil
}

// FindByEmail returns the account registered under the email.
func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.records {
		if stored.Email == email {
			u := stored
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

// FindByID returns the account with the provided identifier.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

// FindNotificationDestination resolves the SMS destination of the account.
func (r *MemoryRepository) FindNotificationDestination(ctx context.Context, id string) (string, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	if u.Phone == "" {
		return "", ErrNoDestination
	}

	return u.Phone, nil
}
