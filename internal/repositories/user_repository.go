package repositories

import (
	"context"

	"loadlab/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create stores user, failing with ErrDuplicate when the username or
	// email is already registered. The check and the insert are atomic.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByLogin finds the user whose username or email equals login.
	// A username match wins over an email match.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}
