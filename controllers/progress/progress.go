package progressController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services/progression"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProgressController exposes the student progress surface on top of the
// progression engine.
type ProgressController struct {
	DB     *gorm.DB
	Engine *progression.Engine
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{
		DB:     db,
		Engine: progression.NewEngine(database.NewStore(db)),
	}
}

// CompleteChapter marks a chapter as completed for the authenticated
// student.
func (pc *ProgressController) CompleteChapter(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	chapterID := c.Locals("chapterID").(uint)

	result, err := pc.Engine.CompleteChapter(studentID, chapterID)
	if err != nil {
		return middleware.DomainErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter marked as completed successfully!", fiber.Map{
		"progress": result.Progress,
		"chapter": fiber.Map{
			"id":             result.Chapter.ID,
			"title":          result.Chapter.Title,
			"sequence_order": result.Chapter.SequenceOrder,
		},
	})
}

// GetMyProgress returns the completion snapshot for every course
// assigned to the authenticated student.
func (pc *ProgressController) GetMyProgress(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var assignments []courseModels.Assignment
	if err := pc.DB.Where("student_id = ?", studentID).Order("assigned_at desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	list := make([]fiber.Map, 0, len(assignments))
	for _, assignment := range assignments {
		var course courseModels.Course
		if err := pc.DB.First(&course, assignment.CourseID).Error; err != nil {
			continue
		}

		snapshot, err := pc.Engine.CourseProgress(studentID, assignment.CourseID)
		if err != nil {
			return middleware.DomainErrorResponse(c, err)
		}

		list = append(list, fiber.Map{
			"course": fiber.Map{
				"id":          course.ID,
				"title":       course.Title,
				"description": course.Description,
			},
			"assigned_at":          assignment.AssignedAt,
			"totalChapters":        snapshot.TotalChapters,
			"completedChapters":    snapshot.CompletedChapters,
			"completionPercentage": snapshot.CompletionPercentage,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":     list,
		"totalCourses": len(list),
	})
}

// GetCompletedChapters lists the chapter ids the student has completed
// in one course.
func (pc *ProgressController) GetCompletedChapters(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	assigned, err := pc.Engine.IsAssigned(studentID, courseID)
	if err != nil {
		return middleware.DomainErrorResponse(c, err)
	}
	if !assigned {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not assigned to this course", nil)
	}

	var chapterIDs []uint
	if err := pc.DB.Model(&courseModels.Progress{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Pluck("chapter_id", &chapterIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed chapters fetched successfully!", fiber.Map{
		"courseId":            courseID,
		"completedChapterIds": chapterIDs,
		"count":               len(chapterIDs),
	})
}
