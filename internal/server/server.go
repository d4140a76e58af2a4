// Package server assembles the commerce API's Fiber application.
package server

import (
	"context"
	"time"

	"loadlab/internal/config"
	"loadlab/internal/handlers"
	"loadlab/internal/latency"
	"loadlab/internal/metrics"
	"loadlab/internal/middleware"
	"loadlab/internal/repositories"
	"loadlab/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// BodyLimit caps request bodies.
const BodyLimit = 10 * 1024 * 1024

// Deps is everything the API needs from the outside world.
type Deps struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  *repositories.Store

	// Context parents every request context; cancelling it aborts pending simulated delays.
	// Defaults to context.Background().
	Context context.Context
	// Latency defaults to latency.Disabled().
	Latency latency.Simulator
	// Publisher and AnalyticsCache are optional.
	Publisher      services.OrderEventPublisher
	AnalyticsCache services.AnalyticsCache

	// ServiceOptions are appended to the options every service is built with.
	ServiceOptions []services.Option
	Started        time.Time
}

// New wires services and handlers over deps and returns the ready Fiber app.
func New(deps Deps) *fiber.App {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	sim := deps.Latency
	if sim == nil {
		sim = latency.Disabled()
	}
	baseCtx := deps.Context
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if deps.Started.IsZero() {
		deps.Started = time.Now()
	}

	opts := append([]services.Option{
		services.WithLogger(log),
		services.WithTokenTTL(cfg.JWTTTL),
	}, deps.ServiceOptions...)

	locks := services.NewUserLocks()
	authService := services.NewAuthService(deps.Store.Users, cfg.JWTSecret, opts...)
	productService := services.NewProductService(deps.Store.Products)
	cartService := services.NewCartService(deps.Store.Carts, deps.Store.Products, locks, opts...)
	orderService := services.NewOrderService(deps.Store.Orders, deps.Store.Carts, deps.Store.Products, locks, deps.Publisher, opts...)
	analyticsService := services.NewAnalyticsService(deps.Store, deps.AnalyticsCache, cfg.AnalyticsCacheTTL, opts...)

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		BodyLimit:             BodyLimit,
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.BaseContext(baseCtx))
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins()}))
	if cfg.HTTPLogEnabled {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
			Output: log.Out,
		}))
	}
	app.Use(middleware.Metrics())

	app.Get("/metrics", metrics.Handler())
	handlers.NewHealthHandler(deps.Started).RegisterRoutes(app)

	auth := middleware.AuthRequired(authService, log)
	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api, sim)
	handlers.NewProductHandler(productService).RegisterRoutes(api, sim)
	handlers.NewCartHandler(cartService).RegisterRoutes(api, auth, sim)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, auth, sim)
	handlers.NewAnalyticsHandler(analyticsService).RegisterRoutes(api, auth, sim)

	app.Use(handlers.NotFound)
	return app
}
