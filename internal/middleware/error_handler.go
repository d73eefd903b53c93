package middleware

import (
	"petsitter-backend/internal/pkg/apperrors"
	"petsitter-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Fiber errors keep their code;
// typed service errors map by kind; anything else is a 500 with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return response.Error(c, e.Code, e.Message)
	}
	if apperrors.IsTyped(err) {
		return response.DomainError(c, err)
	}
	return response.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
}
