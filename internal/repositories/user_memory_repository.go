package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"loadlab/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Usernames and emails are indexed so lookups and uniqueness checks avoid full scans.
type MemoryUserRepository struct {
	users      map[string]models.User
	byUsername map[string]string
	byEmail    map[string]string
	mu         sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[string]models.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
	}
	if _, taken := r.byEmail[user.Email]; taken {
		return fmt.Errorf("email %q: %w", user.Email, ErrDuplicate)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, taken := r.users[user.ID]; taken {
		return fmt.Errorf("user ID %s: %w", user.ID, ErrDuplicate)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	r.users[user.ID] = *user
	r.byUsername[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByID returns a user by their ID.
func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetByLogin returns the user whose username or email equals login.
func (r *MemoryUserRepository) GetByLogin(_ context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[login]
	if !ok {
		id, ok = r.byEmail[login]
	}
	if !ok {
		return nil, fmt.Errorf("user with login %s: %w", login, ErrNotFound)
	}
	user := r.users[id]
	return &user, nil
}

// Count returns the number of users.
func (r *MemoryUserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
