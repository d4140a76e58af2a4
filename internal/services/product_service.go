package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"loadlab/internal/apperrors"
	"loadlab/internal/models"
	"loadlab/internal/repositories"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Sort keys understood by ListProducts.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// ProductQuery selects a page of the catalog.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Sort     string
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts filters by category, then by search term, sorts, and slices one page.
func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to fetch products: %w", err))
	}

	filtered := filterProducts(all, q.Category, q.Search)
	sortProducts(filtered, q.Sort)

	total := len(filtered)
	pages := total / q.Limit
	if total%q.Limit != 0 {
		pages++
	}

	// Pages past the end are empty; checking first keeps the offset from overflowing.
	page := []models.Product{}
	if q.Page-1 < pages {
		offset := (q.Page - 1) * q.Limit
		end := total
		if total-offset > q.Limit {
			end = offset + q.Limit
		}
		page = append(page, filtered[offset:end]...)
	}

	return &models.ProductPage{
		Products: page,
		Pagination: models.Pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to fetch product %s: %w", id, err))
	}
	return product, nil
}

func filterProducts(products []models.Product, category, search string) []models.Product {
	search = strings.ToLower(search)
	out := products[:0:0]
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProducts reorders in place; unknown keys leave catalog order untouched.
func sortProducts(products []models.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	}
}
