package middleware

import (
	"context"

	"loadlab/internal/latency"

	"github.com/gofiber/fiber/v2"
)

// BaseContext makes ctx the parent of every request's user context.
// fasthttp never cancels on client disconnect, so ctx is what ends pending delays on shutdown.
func BaseContext(ctx context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// SimulatedLatency delays the request by the simulator's window for endpoint.
// If the user context ends while waiting the handler is skipped.
func SimulatedLatency(sim latency.Simulator, endpoint string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := sim.Delay(c.UserContext(), endpoint); err != nil {
			return fiber.NewError(fiber.StatusRequestTimeout, "Request cancelled")
		}
		return c.Next()
	}
}
