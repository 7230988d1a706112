package middleware

import (
	"errors"

	"lms/services/domain"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, message string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
}

// DomainErrorResponse maps a typed engine failure to its HTTP status and
// fixed response shape. Anything unclassified becomes a 500.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return JsonResponse(c, derr.StatusCode(), false, derr.Message, derr.Data)
	}
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
}
