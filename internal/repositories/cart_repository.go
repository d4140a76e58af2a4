package repositories

import (
	"context"

	"loadlab/internal/models"
)

// CartRepository stores one ordered list of items per user.
type CartRepository interface {
	// Get returns the user's items in insertion order; an unknown user has an empty cart.
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	// Save replaces the user's cart with items.
	Save(ctx context.Context, userID string, items []models.CartItem) error
	Delete(ctx context.Context, userID string) error
}
