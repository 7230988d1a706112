package protectedController

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ProtectedController serves the role-demo endpoints: each handler just
// echoes the authenticated identity back, guarded by the role middleware
// on its route.
type ProtectedController struct{}

func NewProtectedController() *ProtectedController {
	return &ProtectedController{}
}

func identity(c *fiber.Ctx) fiber.Map {
	return fiber.Map{
		"userId": c.Locals("userId"),
		"role":   c.Locals("role"),
	}
}

func (pc *ProtectedController) Profile(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile accessed successfully!", identity(c))
}

func (pc *ProtectedController) StudentDashboard(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student dashboard accessed successfully!", identity(c))
}

func (pc *ProtectedController) MentorDashboard(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor dashboard accessed successfully!", identity(c))
}

func (pc *ProtectedController) AdminDashboard(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin dashboard accessed successfully!", identity(c))
}

func (pc *ProtectedController) Management(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Management panel accessed successfully!", identity(c))
}

func (pc *ProtectedController) Common(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Common resource accessed successfully!", identity(c))
}
