package repositories

import (
	"fmt"

	"loadlab/internal/models"

	"gorm.io/gorm"
)

// Store bundles the repositories a server instance works against.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// NewMemoryStore returns an isolated, process-local store.
func NewMemoryStore() *Store {
	return &Store{
		Users:    NewMemoryUserRepository(),
		Products: NewMemoryProductRepository(),
		Carts:    NewMemoryCartRepository(),
		Orders:   NewMemoryOrderRepository(),
	}
}

// NewGORMStore migrates the schema on db and returns a store backed by it.
func NewGORMStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return &Store{
		Users:    NewGORMUserRepository(db),
		Products: NewGORMProductRepository(db),
		Carts:    NewGORMCartRepository(db),
		Orders:   NewGORMOrderRepository(db),
	}, nil
}
