package certification

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lms/models"
	courseModels "lms/models/course"
	"lms/services/domain"
	"lms/services/progression"
)

// Store is the persistence surface for certificate issuance. Lookups
// return (nil, nil) when the row is absent.
type Store interface {
	FindCourse(id uint) (*courseModels.Course, error)
	FindUser(id uint) (*models.User, error)
	FindCertificate(studentID, courseID uint) (*courseModels.Certificate, error)
	InsertCertificate(cert *courseModels.Certificate) error
}

// Progress re-derives completion through the progression engine so both
// engines always agree on the numbers.
type Progress interface {
	IsAssigned(studentID, courseID uint) (bool, error)
	CourseProgress(studentID, courseID uint) (progression.CourseProgress, error)
}

// Renderer turns the display fields into the certificate document. It is
// stateless; every request re-renders.
type Renderer interface {
	Render(studentLabel, courseTitle, dateLabel string) ([]byte, error)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(studentLabel, courseTitle, dateLabel string) ([]byte, error)

func (f RendererFunc) Render(studentLabel, courseTitle, dateLabel string) ([]byte, error) {
	return f(studentLabel, courseTitle, dateLabel)
}

// IssueResult carries the rendered document plus issuance metadata.
// Persisted is false when the certificate row could not be stored and
// the document was issued anyway, dated now.
type IssueResult struct {
	Document     []byte
	IssuedAt     time.Time
	SerialNumber string
	Persisted    bool
	Created      bool
	StudentEmail string
	CourseTitle  string
}

// Engine gates certificate issuance on 100% completion and keeps
// issuance idempotent: the first stored certificate is authoritative and
// its IssuedAt is reused on every later request.
type Engine struct {
	store    Store
	progress Progress
	renderer Renderer
}

func NewEngine(store Store, progress Progress, renderer Renderer) *Engine {
	return &Engine{store: store, progress: progress, renderer: renderer}
}

// GetOrIssue validates eligibility, looks up or creates the certificate
// record, and renders the document.
func (e *Engine) GetOrIssue(studentID, courseID uint) (*IssueResult, error) {
	assigned, err := e.progress.IsAssigned(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, domain.Forbidden("You are not assigned to this course")
	}

	courseRow, err := e.store.FindCourse(courseID)
	if err != nil {
		return nil, domain.Upstream("Failed to fetch course", err)
	}
	if courseRow == nil {
		return nil, domain.NotFound("Course not found")
	}

	student, err := e.store.FindUser(studentID)
	if err != nil {
		return nil, domain.Upstream("Failed to fetch student", err)
	}
	if student == nil {
		return nil, domain.NotFound("Student not found")
	}

	snapshot, err := e.progress.CourseProgress(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if snapshot.TotalChapters == 0 {
		return nil, domain.Validation("Course has no chapters. Certificate cannot be generated.")
	}
	if snapshot.CompletionPercentage != 100 {
		return nil, domain.ForbiddenWithData(
			fmt.Sprintf("Course completion is %d%%. You must complete 100%% of the course to generate a certificate.", snapshot.CompletionPercentage),
			snapshot,
		)
	}

	result := &IssueResult{
		Persisted:    true,
		StudentEmail: student.Email,
		CourseTitle:  courseRow.Title,
	}

	existing, err := e.store.FindCertificate(studentID, courseID)
	if err != nil {
		return nil, domain.Upstream("Failed to fetch certificate", err)
	}
	if existing != nil {
		result.IssuedAt = existing.IssuedAt
		result.SerialNumber = existing.SerialNumber
	} else {
		cert := &courseModels.Certificate{
			StudentID:    studentID,
			CourseID:     courseID,
			SerialNumber: uuid.NewString(),
			IssuedAt:     time.Now().UTC(),
		}
		switch insertErr := e.store.InsertCertificate(cert); {
		case insertErr == nil:
			result.Created = true
			result.IssuedAt = cert.IssuedAt
			result.SerialNumber = cert.SerialNumber
		case errors.Is(insertErr, domain.ErrDuplicate):
			// A concurrent first issuance won; its record is authoritative.
			winner, findErr := e.store.FindCertificate(studentID, courseID)
			if findErr == nil && winner != nil {
				result.IssuedAt = winner.IssuedAt
				result.SerialNumber = winner.SerialNumber
			} else {
				result.IssuedAt = time.Now().UTC()
				result.Persisted = false
			}
		default:
			// Deliberate fallback: the document is still issued, dated
			// now, without a durable certificate row.
			result.IssuedAt = time.Now().UTC()
			result.Persisted = false
		}
	}

	document, err := e.renderer.Render(student.Email, courseRow.Title, result.IssuedAt.Format("January 2, 2006"))
	if err != nil {
		return nil, domain.Upstream("Failed to generate certificate", err)
	}
	result.Document = document

	return result, nil
}
