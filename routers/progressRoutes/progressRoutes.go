package progressRoutes

import (
	progressController "lms/controllers/progress"
	"lms/middleware"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProgressRoutes(app *fiber.App, db *gorm.DB) {
	controller := progressController.NewProgressController(db)

	progress := app.Group("/api/progress", middleware.JWTMiddleware, middleware.RequireRole("student"))
	progress.Post("/:chapterId/complete", progressValidator.ChapterIDParamValidator, controller.CompleteChapter)
	progress.Get("/my", controller.GetMyProgress)
	progress.Get("/course/:courseId/chapters", progressValidator.CourseIDParamValidator, controller.GetCompletedChapters)
}
