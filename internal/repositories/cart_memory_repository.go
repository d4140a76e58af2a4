package repositories

import (
	"context"
	"sync"

	"loadlab/internal/models"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	carts map[string][]models.CartItem
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[string][]models.CartItem),
	}
}

// Get returns a copy of the user's cart.
func (r *MemoryCartRepository) Get(_ context.Context, userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.carts[userID]
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out, nil
}

// Save replaces the user's cart.
func (r *MemoryCartRepository) Save(_ context.Context, userID string, items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		delete(r.carts, userID)
		return nil
	}
	stored := make([]models.CartItem, len(items))
	for i, item := range items {
		item.UserID = userID
		item.Position = i
		stored[i] = item
	}
	r.carts[userID] = stored
	return nil
}

// Delete removes the user's cart entirely.
func (r *MemoryCartRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
