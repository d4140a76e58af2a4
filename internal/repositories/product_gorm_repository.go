package repositories

import (
	"context"
	"errors"
	"fmt"

	"loadlab/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database in catalog order.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("position").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create appends a new product to the catalog.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Product{}).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		product.Position = int(n)
		if err := tx.Create(product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("product with ID %s: %w", product.ID, ErrDuplicate)
			}
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
}

// Count returns the number of products.
func (r *GORMProductRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return int(n), nil
}

// CountByCategory groups the catalog by category.
func (r *GORMProductRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Category string
		Count    int
	}
	if err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

// ReserveStock decrements stock inside one transaction; any shortfall rolls back all lines.
func (r *GORMProductRepository) ReserveStock(ctx context.Context, reqs []StockRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, req := range reqs {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", req.ProductID, req.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", req.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to reserve stock for %s: %w", req.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				var n int64
				if err := tx.Model(&models.Product{}).Where("id = ?", req.ProductID).Count(&n).Error; err != nil {
					return fmt.Errorf("failed to check product %s: %w", req.ProductID, err)
				}
				if n == 0 {
					return fmt.Errorf("product with ID %s: %w", req.ProductID, ErrNotFound)
				}
				return fmt.Errorf("product %s (requested: %d): %w", req.ProductID, req.Quantity, ErrInsufficientStock)
			}
		}
		return nil
	})
}

// ReleaseStock adds reserved quantities back.
func (r *GORMProductRepository) ReleaseStock(ctx context.Context, reqs []StockRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, req := range reqs {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", req.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", req.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to release stock for %s: %w", req.ProductID, err)
			}
		}
		return nil
	})
}
