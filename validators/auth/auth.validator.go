package authValidator

import (
	"regexp"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterValidator validates the registration payload and stores it in
// locals for the controller.
func RegisterValidator(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))

	if reqData.Email == "" || !emailRegex.MatchString(reqData.Email) {
		return middleware.ValidationErrorResponse(c, "A valid email is required!")
	}
	if len(reqData.Password) < 6 {
		return middleware.ValidationErrorResponse(c, "Password must be at least 6 characters long!")
	}

	c.Locals("validatedRegister", reqData)
	return c.Next()
}

// LoginValidator validates the login payload.
func LoginValidator(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))

	if reqData.Email == "" || !emailRegex.MatchString(reqData.Email) {
		return middleware.ValidationErrorResponse(c, "A valid email is required!")
	}
	if reqData.Password == "" {
		return middleware.ValidationErrorResponse(c, "Password is required!")
	}

	c.Locals("validatedLogin", reqData)
	return c.Next()
}
