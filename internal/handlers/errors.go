package handlers

import (
	"errors"

	"loadlab/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders every error as {"error": "..."}.
// Only AppErrors and fiber errors reach the client verbatim; anything else becomes a generic 500.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := apperrors.InternalMessage

		var fe *fiber.Error
		if appErr, ok := apperrors.As(err); ok {
			status = appErr.HTTPStatus
			message = appErr.Message
		} else if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.WithError(err).WithFields(logrus.Fields{
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
			}).Error("request failed")
		}
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
}

// NotFound answers requests no route matched.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Endpoint not found"})
}
