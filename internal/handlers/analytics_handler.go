package handlers

import (
	"loadlab/internal/latency"
	"loadlab/internal/middleware"
	"loadlab/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, sim latency.Simulator) {
	router.Get("/analytics", auth, middleware.SimulatedLatency(sim, latency.GetAnalytics), h.HandleGetAnalytics)
}

func (h *AnalyticsHandler) HandleGetAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.GetAnalytics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(analytics)
}
