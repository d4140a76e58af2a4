package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loadlab/internal/apperrors"
	"loadlab/internal/models"
	"loadlab/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CartService maintains one cart per user.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	locks       *UserLocks
	now         func() time.Time
	logger      *logrus.Logger
}

// NewCartService creates a new CartService. locks must be shared with the OrderService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, locks *UserLocks, opts ...Option) *CartService {
	s := applyOptions(opts)
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		locks:       locks,
		now:         s.now,
		logger:      s.logger,
	}
}

// GetCart resolves every item's product and totals the cart.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	items, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to fetch cart: %w", err))
	}
	lines, err := resolveLines(ctx, s.productRepo, items)
	if err != nil {
		return nil, err
	}
	return &models.Cart{
		Items:     lines,
		Total:     linesTotal(lines).InexactFloat64(),
		ItemCount: len(items),
	}, nil
}

// AddItem puts quantity units of a product in the cart and returns the number of distinct items.
// Repeated adds of one product merge into a single entry whose total quantity may not exceed stock.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (int, error) {
	if productID == "" {
		return 0, apperrors.Validation("Product ID required")
	}
	if quantity <= 0 {
		return 0, apperrors.Validation("Quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, apperrors.NotFound("Product not found")
		}
		return 0, apperrors.Internal(fmt.Errorf("failed to fetch product %s: %w", productID, err))
	}
	if quantity > product.Stock {
		return 0, apperrors.Validation("Insufficient stock")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	items, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return 0, apperrors.Internal(fmt.Errorf("failed to fetch cart: %w", err))
	}

	merged := false
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if items[i].Quantity+quantity > product.Stock {
			return 0, apperrors.Validation("Insufficient stock")
		}
		items[i].Quantity += quantity
		merged = true
		break
	}
	if !merged {
		items = append(items, models.CartItem{
			ID:        uuid.New().String(),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   s.now(),
		})
	}

	if err := s.cartRepo.Save(ctx, userID, items); err != nil {
		return 0, apperrors.Internal(fmt.Errorf("failed to save cart: %w", err))
	}
	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	}).Debug("item added to cart")
	return len(items), nil
}

// resolveLines pairs cart items with their products.
// A dangling product reference is an internal error, not a client mistake.
func resolveLines(ctx context.Context, productRepo repositories.ProductRepository, items []models.CartItem) ([]models.LineItem, error) {
	lines := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		product, err := productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("cart item %s references product %s: %w", item.ID, item.ProductID, err))
		}
		lines = append(lines, models.LineItem{CartItem: item, Product: *product})
	}
	return lines, nil
}
