package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

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

// CourseBodyValidator validates the create/update course payload.
func CourseBodyValidator(c *fiber.Ctx) error {
	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	reqData.Title = strings.TrimSpace(reqData.Title)
	if reqData.Title == "" {
		return middleware.ValidationErrorResponse(c, "Title is required and must be a non-empty string!")
	}

	c.Locals("validatedCourse", reqData)
	return c.Next()
}

// AssignStudentsValidator validates the batch assignment payload. The
// id list must be non-empty, positive and free of duplicates.
func AssignStudentsValidator(c *fiber.Ctx) error {
	reqData := new(struct {
		StudentIDs []uint `json:"studentIds"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if len(reqData.StudentIDs) == 0 {
		return middleware.ValidationErrorResponse(c, "studentIds must be a non-empty array!")
	}

	seen := make(map[uint]struct{}, len(reqData.StudentIDs))
	for _, id := range reqData.StudentIDs {
		if id == 0 {
			return middleware.ValidationErrorResponse(c, "studentIds must contain positive integers!")
		}
		if _, dup := seen[id]; dup {
			return middleware.ValidationErrorResponse(c, "studentIds must not contain duplicates!")
		}
		seen[id] = struct{}{}
	}

	c.Locals("studentIDs", reqData.StudentIDs)
	return c.Next()
}

// ChapterBodyValidator validates the create chapter payload.
func ChapterBodyValidator(c *fiber.Ctx) error {
	reqData := new(struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		ImageURL      string `json:"image_url"`
		VideoURL      string `json:"video_url"`
		SequenceOrder int    `json:"sequence_order"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	reqData.Title = strings.TrimSpace(reqData.Title)
	if reqData.Title == "" {
		return middleware.ValidationErrorResponse(c, "Title is required and must be a non-empty string!")
	}
	if reqData.SequenceOrder < 1 {
		return middleware.ValidationErrorResponse(c, "sequence_order must be a positive integer!")
	}

	c.Locals("validatedChapter", reqData)
	return c.Next()
}
