package services_test

import (
	"context"
	"math"
	"testing"

	"loadlab/internal/apperrors"
	"loadlab/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(t *testing.T, svc *services.ProductService, q services.ProductQuery) []string {
	t.Helper()
	page, err := svc.ListProducts(context.Background(), q)
	require.NoError(t, err)
	out := make([]string, 0, len(page.Products))
	for _, p := range page.Products {
		out = append(out, p.ID)
	}
	return out
}

func TestProductService_ListProducts(t *testing.T) {
	svc := services.NewProductService(seededStore(t).Products)

	t.Run("defaults", func(t *testing.T) {
		page, err := svc.ListProducts(context.Background(), services.ProductQuery{Page: -3, Limit: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Pagination.Page)
		assert.Equal(t, 20, page.Pagination.Limit)
		assert.Equal(t, 5, page.Pagination.Total)
		assert.Equal(t, 1, page.Pagination.Pages)
		assert.Len(t, page.Products, 5)
	})

	t.Run("pagination covers the catalog", func(t *testing.T) {
		var all []string
		for p := 1; p <= 3; p++ {
			all = append(all, ids(t, svc, services.ProductQuery{Page: p, Limit: 2})...)
		}
		assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, all)

		page, err := svc.ListProducts(context.Background(), services.ProductQuery{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Pagination.Pages)
	})

	t.Run("page past the end", func(t *testing.T) {
		page, err := svc.ListProducts(context.Background(), services.ProductQuery{Page: 9, Limit: 2})
		require.NoError(t, err)
		assert.NotNil(t, page.Products)
		assert.Empty(t, page.Products)
		assert.Equal(t, 5, page.Pagination.Total)
	})

	t.Run("extreme page and limit", func(t *testing.T) {
		page, err := svc.ListProducts(context.Background(), services.ProductQuery{Page: 1, Limit: math.MaxInt})
		require.NoError(t, err)
		assert.Len(t, page.Products, 5)
		assert.Equal(t, 1, page.Pagination.Pages)

		page, err = svc.ListProducts(context.Background(), services.ProductQuery{Page: 1, Limit: 10_000_000_000})
		require.NoError(t, err)
		assert.Len(t, page.Products, 5)

		page, err = svc.ListProducts(context.Background(), services.ProductQuery{Page: 1 << 62, Limit: 4})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
		assert.Equal(t, 2, page.Pagination.Pages)

		page, err = svc.ListProducts(context.Background(), services.ProductQuery{Page: math.MaxInt, Limit: math.MaxInt})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
	})

	t.Run("category is case-insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"p1", "p4"}, ids(t, svc, services.ProductQuery{Category: "electronics"}))
	})

	t.Run("search matches name or description", func(t *testing.T) {
		assert.Equal(t, []string{"p2"}, ids(t, svc, services.ProductQuery{Search: "COTTON"}))
		assert.Equal(t, []string{"p5"}, ids(t, svc, services.ProductQuery{Search: "lamp"}))
	})

	t.Run("category then sort", func(t *testing.T) {
		assert.Equal(t, []string{"p4", "p1"}, ids(t, svc, services.ProductQuery{Category: "Electronics", Sort: services.SortPriceAsc}))
	})

	t.Run("sorts", func(t *testing.T) {
		assert.Equal(t, []string{"p1", "p4", "p2", "p3", "p5"}, ids(t, svc, services.ProductQuery{Sort: services.SortPriceDesc}))
		// p1 and p4 tie on rating and keep catalog order.
		assert.Equal(t, []string{"p3", "p1", "p4", "p2", "p5"}, ids(t, svc, services.ProductQuery{Sort: services.SortRating}))
		assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(t, svc, services.ProductQuery{Sort: "bogus"}))
	})
}

func TestProductService_GetProduct(t *testing.T) {
	svc := services.NewProductService(seededStore(t).Products)

	p, err := svc.GetProduct(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, "Novel", p.Name)

	_, err = svc.GetProduct(context.Background(), "nope")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Product not found", appErr.Message)
}
