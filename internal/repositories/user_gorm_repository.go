package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loadlab/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user; the unique indexes back up the explicit check.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check user uniqueness: %w", err)
		}
		if taken > 0 {
			return fmt.Errorf("username %q or email %q: %w", user.Username, user.Email, ErrDuplicate)
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("user %q: %w", user.Username, ErrDuplicate)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByLogin retrieves a user by username, falling back to email.
func (r *GORMUserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	user, err := r.first(ctx, "username = ?", login)
	if errors.Is(err, ErrNotFound) {
		return r.first(ctx, "email = ?", login)
	}
	return user, err
}

// Count returns the number of users.
func (r *GORMUserRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return int(n), nil
}

func (r *GORMUserRepository) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", arg, err)
	}
	return &user, nil
}
