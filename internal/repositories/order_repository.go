package repositories

import (
	"context"

	"loadlab/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are immutable once created, so there is no update path.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Count(ctx context.Context) (int, error)
}
