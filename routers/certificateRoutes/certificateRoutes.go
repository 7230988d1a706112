package certificateRoutes

import (
	certificateController "lms/controllers/certificate"
	"lms/middleware"
	certificateValidator "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCertificateRoutes(app *fiber.App, db *gorm.DB) {
	controller := certificateController.NewCertificateController(db)

	certificates := app.Group("/api/certificates", middleware.JWTMiddleware, middleware.RequireRole("student"))
	certificates.Get("/:courseId", certificateValidator.CourseIDParamValidator, controller.Download)
}
