package response

import (
	"github.com/gofiber/fiber/v2"

	"petsitter-backend/internal/pkg/apperrors"
)

// ErrorBody is the standardized error JSON shape: statusCode, message and the
// generic reason phrase. Success responses echo the persisted entity as-is.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Reason     string `json:"error"`
}

func reason(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusTooManyRequests:
		return "Too Many Requests"
	default:
		return "Internal Server Error"
	}
}

// Error sends the standard error body with the given status code.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		StatusCode: statusCode,
		Message:    message,
		Reason:     reason(statusCode),
	})
}

// DomainError sends err using the apperrors kind → status mapping.
func DomainError(c *fiber.Ctx, err error) error {
	return Error(c, apperrors.StatusCode(err), err.Error())
}
