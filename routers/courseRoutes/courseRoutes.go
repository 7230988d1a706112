package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCourseRoutes(app *fiber.App, db *gorm.DB) {
	controller := controllers.NewCourseController(db)

	// Mentor authoring surface.
	courses := app.Group("/api/courses", middleware.JWTMiddleware, middleware.RequireRole("mentor"))
	courses.Post("/", courseValidator.CourseBodyValidator, controller.CreateCourse)
	courses.Get("/my", controller.GetMentorCourses)
	courses.Get("/:courseId", courseValidator.CourseIDParamValidator, controller.GetCourseDetails)
	courses.Put("/:courseId", courseValidator.CourseIDParamValidator, courseValidator.CourseBodyValidator, controller.UpdateCourse)
	courses.Delete("/:courseId", courseValidator.CourseIDParamValidator, controller.DeleteCourse)
	courses.Post("/:courseId/assign", courseValidator.CourseIDParamValidator, courseValidator.AssignStudentsValidator, controller.AssignStudents)
	courses.Post("/:courseId/chapters", courseValidator.CourseIDParamValidator, courseValidator.ChapterBodyValidator, controller.CreateChapter)
	courses.Get("/:courseId/chapters", courseValidator.CourseIDParamValidator, controller.GetCourseChapters)

	// Student catalog surface.
	studentCourses := app.Group("/api/student/courses", middleware.JWTMiddleware, middleware.RequireRole("student"))
	studentCourses.Get("/my", controller.GetStudentCourses)
	studentCourses.Get("/:courseId", courseValidator.CourseIDParamValidator, controller.GetStudentCourse)
	studentCourses.Get("/:courseId/chapters", courseValidator.CourseIDParamValidator, controller.GetStudentCourseChapters)
}
