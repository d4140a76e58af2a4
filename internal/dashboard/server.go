package dashboard

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// StatusResponse is everything the dashboard page renders.
type StatusResponse struct {
	ServerOnline bool            `json:"serverOnline"`
	LastChecked  *time.Time      `json:"lastChecked,omitempty"`
	CurrentTest  string          `json:"currentTest,omitempty"`
	Tests        []TestResult    `json:"tests"`
	Metrics      []MetricCard    `json:"metrics"`
	Scenarios    []Scenario      `json:"scenarios"`
	Phases       []Phase         `json:"phases"`
	Analysis     AnalysisSummary `json:"analysis"`
}

// Handler serves the dashboard's JSON surface.
type Handler struct {
	monitor *HealthMonitor
	runner  *Runner
}

func NewHandler(monitor *HealthMonitor, runner *Runner) *Handler {
	return &Handler{monitor: monitor, runner: runner}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
	api := router.Group("/api")
	api.Get("/status", h.HandleStatus)
	api.Get("/tests", h.HandleTests)
	api.Post("/tests/:name/run", h.HandleRunTest)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	resp := StatusResponse{
		ServerOnline: h.monitor.Online(),
		CurrentTest:  h.runner.Current(),
		Tests:        h.runner.Tests(),
		Metrics:      PerformanceMetrics,
		Scenarios:    Scenarios,
		Phases:       Phases,
		Analysis:     Analysis,
	}
	if last := h.monitor.LastChecked(); !last.IsZero() {
		resp.LastChecked = &last
	}
	return c.JSON(resp)
}

func (h *Handler) HandleTests(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tests": h.runner.Tests()})
}

// HandleRunTest starts a simulated run; the name is path-escaped ("Load%20Test").
func (h *Handler) HandleRunTest(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid test name")
	}

	switch err := h.runner.Run(name); {
	case err == nil:
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Test started", "test": name})
	case errors.Is(err, ErrUnknownTest):
		return fiber.NewError(fiber.StatusNotFound, "Test not found")
	case errors.Is(err, ErrTestRunning):
		return fiber.NewError(fiber.StatusConflict, "Test is already running")
	case errors.Is(err, ErrServerOffline):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Server is offline")
	default:
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
}

// NewApp builds the dashboard's Fiber app.
func NewApp(h *Handler, corsOrigins string, logger *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "loadlab-dashboard",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal server error"
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code, msg = fe.Code, fe.Message
			} else {
				logger.WithError(err).WithField("path", c.Path()).Error("dashboard request failed")
			}
			return c.Status(code).JSON(fiber.Map{"error": msg})
		},
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: corsOrigins}))
	h.RegisterRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Endpoint not found"})
	})
	return app
}
