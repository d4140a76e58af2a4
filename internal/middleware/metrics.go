package middleware

import (
	"errors"
	"strconv"
	"time"

	"loadlab/internal/apperrors"
	"loadlab/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latencies per matched route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.RequestsInFlight.Inc()
		defer metrics.RequestsInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = StatusFor(err)
		}
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}
		method := c.Method()
		metrics.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// StatusFor returns the HTTP status an error will be rendered with.
func StatusFor(err error) int {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.HTTPStatus
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
