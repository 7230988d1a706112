package database

import (
	"errors"
	"fmt"

	"lms/models"
	courseModels "lms/models/course"
	"lms/services/domain"

	"gorm.io/gorm"
)

// Store implements the persistence interfaces of the progression and
// certification engines over GORM. Lookups return (nil, nil) when the
// row is absent; errors are reserved for store-level failures.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindChapter(id uint) (*courseModels.Chapter, error) {
	var chapter courseModels.Chapter
	if err := s.db.First(&chapter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chapter, nil
}

func (s *Store) FindAssignment(courseID, studentID uint) (*courseModels.Assignment, error) {
	var assignment courseModels.Assignment
	err := s.db.Where("course_id = ? AND student_id = ?", courseID, studentID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *Store) CountChapters(courseID uint) (int64, error) {
	var count int64
	err := s.db.Model(&courseModels.Chapter{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (s *Store) ListChaptersBefore(courseID uint, sequenceOrder int) ([]courseModels.Chapter, error) {
	var chapters []courseModels.Chapter
	err := s.db.Where("course_id = ? AND sequence_order < ?", courseID, sequenceOrder).
		Order("sequence_order asc").Find(&chapters).Error
	return chapters, err
}

func (s *Store) FindProgress(studentID, chapterID uint) (*courseModels.Progress, error) {
	var progress courseModels.Progress
	err := s.db.Where("student_id = ? AND chapter_id = ?", studentID, chapterID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (s *Store) ListCompletedChapterIDs(studentID, courseID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&courseModels.Progress{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Pluck("chapter_id", &ids).Error
	return ids, err
}

func (s *Store) CountProgress(studentID, courseID uint) (int64, error) {
	var count int64
	err := s.db.Model(&courseModels.Progress{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count, err
}

func (s *Store) InsertProgress(progress *courseModels.Progress) error {
	return translateDuplicate(s.db.Create(progress).Error)
}

func (s *Store) FindCourse(id uint) (*courseModels.Course, error) {
	var c courseModels.Course
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) FindUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindCertificate(studentID, courseID uint) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := s.db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

func (s *Store) InsertCertificate(cert *courseModels.Certificate) error {
	return translateDuplicate(s.db.Create(cert).Error)
}

// translateDuplicate maps GORM's translated unique-violation error to
// the store-agnostic sentinel the engines branch on.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	return err
}
