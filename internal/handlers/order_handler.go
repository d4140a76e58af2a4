package handlers

import (
	"loadlab/internal/latency"
	"loadlab/internal/middleware"
	"loadlab/internal/models"
	"loadlab/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes behind auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, sim latency.Simulator) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", auth, middleware.SimulatedLatency(sim, latency.ListOrders), h.HandleGetOrders)
	orderRoutes.Get("/:id", auth, middleware.SimulatedLatency(sim, latency.GetOrder), h.HandleGetOrderByID)
	orderRoutes.Post("/", auth, middleware.SimulatedLatency(sim, latency.CreateOrder), h.HandleCreateOrder)
}

// HandleGetOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	summaries := make([]models.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, orders[i].ListSummary())
	}
	return c.JSON(fiber.Map{"orders": summaries})
}

// HandleGetOrderByID returns one of the caller's orders with its item snapshot.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandleCreateOrder checks out the caller's cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	order, err := h.service.CreateOrder(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	// Return the created order with its new ID and a 201 Created status
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order.Summary(),
	})
}
