package controllers

import (
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetStudentCourses lists the courses assigned to the authenticated
// student.
func (cc *CourseController) GetStudentCourses(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var assignments []courseModels.Assignment
	if err := cc.DB.Where("student_id = ?", studentID).Order("assigned_at desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	if len(assignments) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No courses assigned", fiber.Map{
			"courses": []fiber.Map{},
			"count":   0,
		})
	}

	courseIDs := make([]uint, 0, len(assignments))
	assignedAt := make(map[uint]interface{}, len(assignments))
	for _, a := range assignments {
		courseIDs = append(courseIDs, a.CourseID)
		assignedAt[a.CourseID] = a.AssignedAt
	}

	var courses []courseModels.Course
	if err := cc.DB.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	byID := make(map[uint]courseModels.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	list := make([]fiber.Map, 0, len(assignments))
	for _, a := range assignments {
		course, ok := byID[a.CourseID]
		if !ok {
			continue
		}
		list = append(list, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"assigned_at": assignedAt[course.ID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": list,
		"count":   len(list),
	})
}

// assignedCourse loads a course and checks the student is assigned to
// it. A nil course with a nil error means the response has already been
// written.
func (cc *CourseController) assignedCourse(c *fiber.Ctx) (*courseModels.Course, error) {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var count int64
	if err := cc.DB.Model(&courseModels.Assignment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	if count == 0 {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this course. Course is not assigned to you.", nil)
	}

	return &course, nil
}

// GetStudentCourse returns a single assigned course.
func (cc *CourseController) GetStudentCourse(c *fiber.Ctx) error {
	course, err := cc.assignedCourse(c)
	if course == nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course": course,
	})
}

// GetStudentCourseChapters lists the chapters of an assigned course in
// sequence order.
func (cc *CourseController) GetStudentCourseChapters(c *fiber.Ctx) error {
	course, err := cc.assignedCourse(c)
	if course == nil {
		return err
	}

	var chapters []courseModels.Chapter
	if err := cc.DB.Where("course_id = ?", course.ID).Order("sequence_order asc").Find(&chapters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", fiber.Map{
		"course":   course,
		"chapters": chapters,
		"count":    len(chapters),
	})
}
