package userController

import (
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController serves the admin user-management surface.
type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// ListUsers returns all accounts, newest first.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// ApproveMentor flips the approval flag on a mentor account.
func (uc *UserController) ApproveMentor(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role != "mentor" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User is not a mentor. Only mentors can be approved!", nil)
	}

	if user.IsApproved {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Mentor is already approved!", nil)
	}

	user.IsApproved = true
	if err := uc.DB.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve mentor!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor approved successfully!", fiber.Map{
		"user": user,
	})
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID := c.Locals("targetUserID").(uint)
	if userID == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// Hard delete: the email column is unique at the DB level, so a
	// soft-deleted row would keep the address occupied forever.
	if err := uc.DB.Unscoped().Delete(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", fiber.Map{
		"deletedUser": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
