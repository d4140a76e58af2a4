package middleware

import (
	"strings"

	"loadlab/internal/apperrors"
	"loadlab/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Context keys set by AuthRequired.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// TokenValidator verifies a bearer token.
type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// A missing token is 401, a token that fails verification is 403.
func AuthRequired(validator TokenValidator, logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			return apperrors.Unauthorized("Access token required")
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			logger.WithError(err).Debug("JWT validation failed")
			return apperrors.Forbidden("Invalid token")
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)

		return c.Next()
	}
}

// UserID returns the authenticated user's id stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// Expected format: "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
