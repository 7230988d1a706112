package progressValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ChapterIDParamValidator parses the :chapterId route param and stores
// it in locals.
func ChapterIDParamValidator(c *fiber.Ctx) error {
	raw := c.Params("chapterId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return middleware.ValidationErrorResponse(c, "Invalid chapter ID!")
	}

	c.Locals("chapterID", uint(id))
	return c.Next()
}

// CourseIDParamValidator parses the :courseId route param and stores it
// in locals.
func CourseIDParamValidator(c *fiber.Ctx) error {
	raw := c.Params("courseId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return middleware.ValidationErrorResponse(c, "Invalid course ID!")
	}

	c.Locals("courseID", uint(id))
	return c.Next()
}
