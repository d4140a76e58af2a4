package repositories

import (
	"context"

	"loadlab/internal/models"
)

// StockRequest asks for Quantity units of a product.
type StockRequest struct {
	ProductID string
	Quantity  int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product in catalog order.
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	// ReserveStock decrements stock for every request or for none of them.
	ReserveStock(ctx context.Context, reqs []StockRequest) error
	// ReleaseStock gives back stock taken by ReserveStock.
	ReleaseStock(ctx context.Context, reqs []StockRequest) error
}
