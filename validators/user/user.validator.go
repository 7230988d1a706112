package userValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// UserIDParamValidator parses the :userId route param and stores it in
// locals.
func UserIDParamValidator(c *fiber.Ctx) error {
	raw := c.Params("userId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return middleware.ValidationErrorResponse(c, "Invalid user ID!")
	}

	c.Locals("targetUserID", uint(id))
	return c.Next()
}
