package handlers

import (
	"loadlab/internal/latency"
	"loadlab/internal/middleware"
	"loadlab/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes behind auth.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, sim latency.Simulator) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", auth, middleware.SimulatedLatency(sim, latency.GetCart), h.HandleGetCart)
	cartRoutes.Post("/", auth, middleware.SimulatedLatency(sim, latency.AddToCart), h.HandleAddToCart)
}

// AddToCartRequest is the body of POST /api/cart. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	size, err := h.service.AddItem(c.UserContext(), middleware.UserID(c), req.ProductID, quantity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Item added to cart",
		"cartSize": size,
	})
}
