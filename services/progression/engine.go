package progression

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	courseModels "lms/models/course"
	"lms/services/domain"
)

// Store is the persistence surface the engine needs. The GORM-backed
// implementation lives in the database package; tests use an in-memory
// fake. Lookups return (nil, nil) when the row is absent.
type Store interface {
	FindChapter(id uint) (*courseModels.Chapter, error)
	FindAssignment(courseID, studentID uint) (*courseModels.Assignment, error)
	CountChapters(courseID uint) (int64, error)
	ListChaptersBefore(courseID uint, sequenceOrder int) ([]courseModels.Chapter, error)
	FindProgress(studentID, chapterID uint) (*courseModels.Progress, error)
	ListCompletedChapterIDs(studentID, courseID uint) ([]uint, error)
	CountProgress(studentID, courseID uint) (int64, error)
	InsertProgress(progress *courseModels.Progress) error
}

// CourseProgress is the completion snapshot for one student on one course.
type CourseProgress struct {
	TotalChapters        int `json:"totalChapters"`
	CompletedChapters    int `json:"completedChapters"`
	CompletionPercentage int `json:"completionPercentage"`
}

// CompletionResult pairs the inserted progress row with the chapter it
// belongs to.
type CompletionResult struct {
	Progress *courseModels.Progress
	Chapter  *courseModels.Chapter
}

// Engine implements chapter locking, completion recording and completion
// percentage. Lock state is derived from stored facts on every read; it
// is never persisted.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// IsAssigned reports whether the student has access to the course.
// Absence of an assignment gates every student-facing course operation.
func (e *Engine) IsAssigned(studentID, courseID uint) (bool, error) {
	assignment, err := e.store.FindAssignment(courseID, studentID)
	if err != nil {
		return false, domain.Upstream("Failed to check course assignment", err)
	}
	return assignment != nil, nil
}

// CourseProgress computes the completion snapshot. Completed rows are
// counted per (student, course) even if the chapter set changed after
// completion; stale completions are not pruned. Percentage rounds
// half-up and is 0 for a course with no chapters.
func (e *Engine) CourseProgress(studentID, courseID uint) (CourseProgress, error) {
	total, err := e.store.CountChapters(courseID)
	if err != nil {
		return CourseProgress{}, domain.Upstream("Failed to fetch course chapters", err)
	}

	completed, err := e.store.CountProgress(studentID, courseID)
	if err != nil {
		return CourseProgress{}, domain.Upstream("Failed to fetch course progress", err)
	}

	snapshot := CourseProgress{
		TotalChapters:     int(total),
		CompletedChapters: int(completed),
	}
	if total > 0 {
		snapshot.CompletionPercentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return snapshot, nil
}

// CompleteChapter records a chapter completion after the ordered
// precondition chain: chapter exists, student assigned, not already
// completed, sequential gate satisfied.
func (e *Engine) CompleteChapter(studentID, chapterID uint) (*CompletionResult, error) {
	chapter, err := e.store.FindChapter(chapterID)
	if err != nil {
		return nil, domain.Upstream("Failed to fetch chapter", err)
	}
	if chapter == nil {
		return nil, domain.NotFound("Chapter not found")
	}

	assigned, err := e.IsAssigned(studentID, chapter.CourseID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, domain.Forbidden("You are not assigned to this course")
	}

	existing, err := e.store.FindProgress(studentID, chapterID)
	if err != nil {
		return nil, domain.Upstream("Error checking progress", err)
	}
	if existing != nil {
		return nil, domain.Conflict("Chapter is already completed")
	}

	if chapter.SequenceOrder > 1 {
		if err := e.checkSequentialGate(studentID, chapter); err != nil {
			return nil, err
		}
	}

	progress := &courseModels.Progress{
		StudentID:   studentID,
		CourseID:    chapter.CourseID,
		ChapterID:   chapterID,
		CompletedAt: time.Now().UTC(),
	}
	if err := e.store.InsertProgress(progress); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost a race with a concurrent completion; same outcome as
			// the pre-check.
			return nil, domain.Conflict("Chapter is already completed")
		}
		return nil, domain.Upstream("Failed to mark chapter as completed", err)
	}

	return &CompletionResult{Progress: progress, Chapter: chapter}, nil
}

// checkSequentialGate requires every stored chapter with a lower
// sequence number to be completed. The rule is literal on the numeric
// values: only chapters that actually exist below the target can block
// it, so gaps in the numbering impose nothing.
func (e *Engine) checkSequentialGate(studentID uint, chapter *courseModels.Chapter) error {
	previous, err := e.store.ListChaptersBefore(chapter.CourseID, chapter.SequenceOrder)
	if err != nil {
		return domain.Upstream("Error validating sequential completion", err)
	}
	if len(previous) == 0 {
		return nil
	}

	completedIDs, err := e.store.ListCompletedChapterIDs(studentID, chapter.CourseID)
	if err != nil {
		return domain.Upstream("Error validating sequential completion", err)
	}

	completed := make(map[uint]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	var missing []int
	for _, prev := range previous {
		if _, ok := completed[prev.ID]; !ok {
			missing = append(missing, prev.SequenceOrder)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	// The ascending order of the missing list is part of the client
	// contract.
	sort.Ints(missing)
	return domain.ForbiddenWithData(
		fmt.Sprintf("You must complete previous chapters first. Missing chapters with sequence_order: %s", joinInts(missing)),
		map[string]interface{}{"missing_sequence_orders": missing},
	)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
