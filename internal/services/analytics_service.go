package services

import (
	"context"
	"fmt"
	"time"

	"loadlab/internal/apperrors"
	"loadlab/internal/models"
	"loadlab/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RecentActivityLimit caps the recent activity feed.
const RecentActivityLimit = 10

// AnalyticsCache keeps a computed snapshot for a while.
type AnalyticsCache interface {
	Get(ctx context.Context) (*models.Analytics, bool, error)
	Set(ctx context.Context, snapshot *models.Analytics, ttl time.Duration) error
}

// AnalyticsService aggregates store-wide statistics.
type AnalyticsService struct {
	store  *repositories.Store
	cache  AnalyticsCache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
// Caching is off unless cache is non-nil and ttl is positive.
func NewAnalyticsService(store *repositories.Store, cache AnalyticsCache, ttl time.Duration, opts ...Option) *AnalyticsService {
	s := applyOptions(opts)
	return &AnalyticsService{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: s.logger,
	}
}

func (s *AnalyticsService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

// GetAnalytics returns the current statistics, from cache when a fresh snapshot exists.
// Cache failures are logged and fall through to a live computation.
func (s *AnalyticsService) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	if s.cacheEnabled() {
		snapshot, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("analytics cache read failed")
		} else if ok {
			return snapshot, nil
		}
	}

	snapshot, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, snapshot, s.ttl); err != nil {
			s.logger.WithError(err).Warn("analytics cache write failed")
		}
	}
	return snapshot, nil
}

func (s *AnalyticsService) compute(ctx context.Context) (*models.Analytics, error) {
	totalProducts, err := s.store.Products.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to count products: %w", err))
	}
	totalUsers, err := s.store.Users.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to count users: %w", err))
	}
	byCategory, err := s.store.Products.CountByCategory(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	orders, err := s.store.Orders.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to fetch orders: %w", err))
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
	}
	average := decimal.Zero
	if len(orders) > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(len(orders))))
	}

	categories := make([]models.CategoryCount, 0, len(models.Categories))
	for _, c := range models.Categories {
		categories = append(categories, models.CategoryCount{Category: c, Count: byCategory[c]})
	}

	sortNewestFirst(orders)
	recent := make([]models.Activity, 0, RecentActivityLimit)
	for i := 0; i < len(orders) && i < RecentActivityLimit; i++ {
		recent = append(recent, models.Activity{
			Type:      "order",
			Amount:    orders[i].Total,
			Timestamp: orders[i].CreatedAt,
		})
	}

	return &models.Analytics{
		TotalProducts:     totalProducts,
		TotalUsers:        totalUsers,
		TotalOrders:       len(orders),
		TotalRevenue:      revenue.InexactFloat64(),
		AverageOrderValue: average.InexactFloat64(),
		TopCategories:     categories,
		RecentActivity:    recent,
	}, nil
}
