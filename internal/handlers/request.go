package handlers

import (
	"loadlab/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// parseBody binds the JSON body into req. An empty body leaves req untouched.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

// parseAndValidate binds the JSON body into req and runs its validate tags.
// Any tag failure is reported to the client as invalidMsg.
func parseAndValidate(c *fiber.Ctx, validate *validator.Validate, req interface{}, invalidMsg string) error {
	if err := parseBody(c, req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(invalidMsg)
	}
	return nil
}
