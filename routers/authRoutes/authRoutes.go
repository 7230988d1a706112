package authRoutes

import (
	authController "lms/controllers/auth"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	controller := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", authValidator.RegisterValidator, controller.Register)
	auth.Post("/login", authValidator.LoginValidator, controller.Login)
}
