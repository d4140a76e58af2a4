package repositories

import (
	"context"
	"fmt"
	"sync"

	"loadlab/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product at the end of the catalog.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.products[product.ID]; ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrDuplicate)
	}
	product.Position = len(r.order)
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// Count returns the number of products.
func (r *MemoryProductRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

// CountByCategory returns the number of products per category.
func (r *MemoryProductRepository) CountByCategory(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range r.products {
		counts[p.Category]++
	}
	return counts, nil
}

// ReserveStock checks every request first and only then decrements, all under one lock.
func (r *MemoryProductRepository) ReserveStock(_ context.Context, reqs []StockRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	needed := make(map[string]int, len(reqs))
	for _, req := range reqs {
		needed[req.ProductID] += req.Quantity
	}
	for id, qty := range needed {
		product, ok := r.products[id]
		if !ok {
			return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		if product.Stock < qty {
			return fmt.Errorf("product %s (requested: %d, available: %d): %w", id, qty, product.Stock, ErrInsufficientStock)
		}
	}
	for id, qty := range needed {
		product := r.products[id]
		product.Stock -= qty
		r.products[id] = product
	}
	return nil
}

// ReleaseStock adds reserved quantities back. Unknown products are skipped.
func (r *MemoryProductRepository) ReleaseStock(_ context.Context, reqs []StockRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range reqs {
		product, ok := r.products[req.ProductID]
		if !ok {
			continue
		}
		product.Stock += req.Quantity
		r.products[req.ProductID] = product
	}
	return nil
}
