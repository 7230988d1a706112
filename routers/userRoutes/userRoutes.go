package userRoutes

import (
	userController "lms/controllers/user"
	"lms/middleware"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	controller := userController.NewUserController(db)

	users := app.Group("/api/users", middleware.JWTMiddleware, middleware.RequireRole("admin"))
	users.Get("/", controller.ListUsers)
	users.Put("/:userId/approve-mentor", userValidator.UserIDParamValidator, controller.ApproveMentor)
	users.Delete("/:userId", userValidator.UserIDParamValidator, controller.DeleteUser)
}
