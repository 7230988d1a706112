package protectedRoutes

import (
	protectedController "lms/controllers/protected"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProtectedRoutes(app *fiber.App) {
	controller := protectedController.NewProtectedController()

	protected := app.Group("/api/protected", middleware.JWTMiddleware)
	protected.Get("/profile", controller.Profile)
	protected.Get("/student-dashboard", middleware.RequireRole("student"), controller.StudentDashboard)
	protected.Get("/mentor-dashboard", middleware.RequireRole("mentor"), controller.MentorDashboard)
	protected.Get("/admin-dashboard", middleware.RequireRole("admin"), controller.AdminDashboard)
	protected.Get("/management", middleware.RequireRole("mentor", "admin"), controller.Management)
	protected.Get("/common", middleware.RequireRole("student", "mentor", "admin"), controller.Common)
}
