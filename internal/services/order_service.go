package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"loadlab/internal/apperrors"
	"loadlab/internal/metrics"
	"loadlab/internal/models"
	"loadlab/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OrderEventPublisher announces created orders to other systems.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	locks       *UserLocks
	publisher   OrderEventPublisher // optional
	now         func() time.Time
	logger      *logrus.Logger
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	locks *UserLocks,
	publisher OrderEventPublisher,
	opts ...Option,
) *OrderService {
	s := applyOptions(opts)
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		locks:       locks,
		publisher:   publisher,
		now:         s.now,
		logger:      s.logger,
	}
}

// CreateOrder checks out the user's cart: it reserves stock for every line,
// stores an immutable snapshot and clears the cart.
func (s *OrderService) CreateOrder(ctx context.Context, userID string) (*models.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	items, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to fetch cart: %w", err))
	}
	if len(items) == 0 {
		return nil, apperrors.Validation("Cart is empty")
	}

	lines, err := resolveLines(ctx, s.productRepo, items)
	if err != nil {
		return nil, err
	}

	reqs := make([]repositories.StockRequest, 0, len(lines))
	for _, line := range lines {
		reqs = append(reqs, repositories.StockRequest{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	if err := s.productRepo.ReserveStock(ctx, reqs); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, apperrors.Validation("Insufficient stock")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to reserve stock: %w", err))
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Items:     lines,
		Total:     linesTotal(lines).InexactFloat64(),
		Status:    models.OrderStatusPending,
		CreatedAt: s.now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		if releaseErr := s.productRepo.ReleaseStock(ctx, reqs); releaseErr != nil {
			s.logger.WithError(releaseErr).WithField("user_id", userID).Error("failed to release reserved stock")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create order in repository: %w", err))
	}

	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		// The order stands; a stale cart is the lesser problem.
		s.logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "order_id": order.ID}).Error("failed to clear cart after order")
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderRevenue.Add(order.Total)
	s.logger.WithFields(logrus.Fields{"user_id": userID, "order_id": order.ID, "total": order.Total}).Info("order created")

	s.publishCreated(ctx, order)
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to fetch orders: %w", err))
	}
	sortNewestFirst(orders)
	return orders, nil
}

// GetOrder returns one of the user's orders. Orders of other users are reported as missing.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to fetch order %s: %w", orderID, err))
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("Order not found")
	}
	return order, nil
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := models.OrderCreatedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order created event")
	}
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
