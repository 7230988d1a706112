package controllers

import (
	"errors"
	"fmt"
	"log"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateChapter adds a chapter to an owned course. Sequence order must
// be unique within the course.
func (cc *CourseController) CreateChapter(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c)
	if course == nil {
		return err
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		ImageURL      string `json:"image_url"`
		VideoURL      string `json:"video_url"`
		SequenceOrder int    `json:"sequence_order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var count int64
	if err := cc.DB.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND sequence_order = ?", course.ID, reqData.SequenceOrder).
		Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false,
			fmt.Sprintf("A chapter with sequence_order %d already exists for this course!", reqData.SequenceOrder), nil)
	}

	chapter := courseModels.Chapter{
		CourseID:      course.ID,
		Title:         reqData.Title,
		Description:   reqData.Description,
		ImageURL:      reqData.ImageURL,
		VideoURL:      reqData.VideoURL,
		SequenceOrder: reqData.SequenceOrder,
	}

	if err := cc.DB.Create(&chapter).Error; err != nil {
		// Unique index on (course_id, sequence_order) catches the race
		// the pre-check above cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false,
				fmt.Sprintf("A chapter with sequence_order %d already exists for this course!", reqData.SequenceOrder), nil)
		}
		log.Printf("Error creating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", fiber.Map{
		"chapter": chapter,
	})
}

// GetCourseChapters lists the chapters of an owned course in sequence
// order.
func (cc *CourseController) GetCourseChapters(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c)
	if course == nil {
		return err
	}

	var chapters []courseModels.Chapter
	if err := cc.DB.Where("course_id = ?", course.ID).Order("sequence_order asc").Find(&chapters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", fiber.Map{
		"chapters": chapters,
		"count":    len(chapters),
	})
}
