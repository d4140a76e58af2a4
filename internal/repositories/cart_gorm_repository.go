package repositories

import (
	"context"
	"fmt"

	"loadlab/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository stores cart items as rows keyed by user.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Get returns the user's items in insertion order.
func (r *GORMCartRepository) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("position").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

// Save replaces the user's rows in one transaction.
func (r *GORMCartRepository) Save(ctx context.Context, userID string, items []models.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([]models.CartItem, len(items))
		for i, item := range items {
			item.UserID = userID
			item.Position = i
			rows[i] = item
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save cart for user %s: %w", userID, err)
		}
		return nil
	})
}

// Delete removes the user's cart entirely.
func (r *GORMCartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart for user %s: %w", userID, err)
	}
	return nil
}
