package controllers

import (
	"log"
	"time"

	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseController serves the mentor course-authoring surface and the
// student catalog views.
type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// CreateCourse creates a course owned by the authenticated mentor.
func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		MentorID:    mentorID,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{
		"course": course,
	})
}

// GetMentorCourses lists courses owned by the authenticated mentor.
func (cc *CourseController) GetMentorCourses(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := cc.DB.Where("mentor_id = ?", mentorID).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"count":   len(courses),
	})
}

// ownedCourse loads a course and checks the mentor owns it. A nil course
// with a nil error means the response has already been written.
func (cc *CourseController) ownedCourse(c *fiber.Ctx) (*courseModels.Course, error) {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.MentorID != mentorID {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this course!", nil)
	}

	return &course, nil
}

// GetCourseDetails returns a mentor's course with its chapters and the
// students assigned to it.
func (cc *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c)
	if course == nil {
		return err
	}

	var chapters []courseModels.Chapter
	if err := cc.DB.Where("course_id = ?", course.ID).Order("sequence_order asc").Find(&chapters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
	}

	var assignments []courseModels.Assignment
	if err := cc.DB.Where("course_id = ?", course.ID).Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
	}

	studentIDs := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		studentIDs = append(studentIDs, a.StudentID)
	}

	var students []models.User
	if len(studentIDs) > 0 {
		if err := cc.DB.Where("id IN ?", studentIDs).Find(&students).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":   course,
		"chapters": chapters,
		"students": students,
	})
}

// UpdateCourse updates the title and description of an owned course.
func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c)
	if course == nil {
		return err
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	if err := cc.DB.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", fiber.Map{
		"course": course,
	})
}

// DeleteCourse removes an owned course together with its chapters,
// assignments, progress and certificates.
func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c)
	if course == nil {
		return err
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Progress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Certificate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Chapter{}).Error; err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
	if err != nil {
		log.Printf("Error deleting course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AssignStudents assigns a batch of students to an owned course. The
// batch is all-or-nothing: every id must be an existing student that is
// not already assigned.
func (cc *CourseController) AssignStudents(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c)
	if course == nil {
		return err
	}

	studentIDs := c.Locals("studentIDs").([]uint)

	var students []models.User
	if err := cc.DB.Where("id IN ?", studentIDs).Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign students!", nil)
	}

	found := make(map[uint]models.User, len(students))
	for _, s := range students {
		found[s.ID] = s
	}

	var missing []uint
	var nonStudents []uint
	for _, id := range studentIDs {
		user, ok := found[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if user.Role != "student" {
			nonStudents = append(nonStudents, id)
		}
	}
	if len(missing) > 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Some users were not found!", fiber.Map{
			"missingIds": missing,
		})
	}
	if len(nonStudents) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only students can be assigned to courses!", fiber.Map{
			"invalidIds": nonStudents,
		})
	}

	var existing []courseModels.Assignment
	if err := cc.DB.Where("course_id = ? AND student_id IN ?", course.ID, studentIDs).Find(&existing).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign students!", nil)
	}
	if len(existing) > 0 {
		alreadyAssigned := make([]uint, 0, len(existing))
		for _, a := range existing {
			alreadyAssigned = append(alreadyAssigned, a.StudentID)
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Some students are already assigned to this course!", fiber.Map{
			"alreadyAssignedIds": alreadyAssigned,
		})
	}

	now := time.Now().UTC()
	assignments := make([]courseModels.Assignment, 0, len(studentIDs))
	for _, id := range studentIDs {
		assignments = append(assignments, courseModels.Assignment{
			CourseID:   course.ID,
			StudentID:  id,
			AssignedAt: now,
		})
	}
	if err := cc.DB.Create(&assignments).Error; err != nil {
		log.Printf("Error creating assignments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign students!", nil)
	}

	for _, s := range students {
		go utils.SendAssignmentEmail(s.Email, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Students assigned successfully!", fiber.Map{
		"courseId":    course.ID,
		"assignedIds": studentIDs,
	})
}
