package handlers

import (
	"loadlab/internal/latency"
	"loadlab/internal/middleware"
	"loadlab/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, sim latency.Simulator) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", middleware.SimulatedLatency(sim, latency.ListProducts), h.HandleGetProducts)
	productRoutes.Get("/:id", middleware.SimulatedLatency(sim, latency.GetProduct), h.HandleGetProductByID)
}

// HandleGetProducts lists one page of the catalog.
// Query: page, limit, category, search, sort (price_asc, price_desc, rating).
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(c.UserContext(), services.ProductQuery{
		Page:     c.QueryInt("page", services.DefaultPage),
		Limit:    c.QueryInt("limit", services.DefaultLimit),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}
