package certificateController

import (
	"fmt"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/pdf"
	"lms/services/certification"
	"lms/services/progression"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CertificateController serves certificate downloads through the
// certification engine.
type CertificateController struct {
	Engine *certification.Engine
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	store := database.NewStore(db)
	return &CertificateController{
		Engine: certification.NewEngine(
			store,
			progression.NewEngine(store),
			certification.RendererFunc(pdf.GenerateCertificate),
		),
	}
}

// Download streams the completion certificate PDF for an assigned,
// fully completed course.
func (cc *CertificateController) Download(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	result, err := cc.Engine.GetOrIssue(studentID, courseID)
	if err != nil {
		return middleware.DomainErrorResponse(c, err)
	}

	if result.Created {
		go utils.SendCertificateEmail(result.StudentEmail, result.CourseTitle, result.SerialNumber)
	}

	filename := fmt.Sprintf("certificate-%s-%d.pdf", strings.Join(strings.Fields(result.CourseTitle), "-"), studentID)

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	if !result.Persisted {
		c.Set("X-Certificate-Persisted", "false")
	}

	return c.Status(fiber.StatusOK).Send(result.Document)
}
