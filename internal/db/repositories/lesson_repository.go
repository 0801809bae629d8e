package repositories

import (
	"context"
	"fmt"

	"aeroclub/flightdesk/internal/constants"
	gormModels "aeroclub/flightdesk/internal/models/gorm"

	"gorm.io/gorm"
)

// LessonRepository handles lessons, prerequisites and debriefs using GORM
type LessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository creates a new GORM-based lesson repository
func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// GetByID retrieves a lesson with its prerequisite list
func (r *LessonRepository) GetByID(ctx context.Context, orgID, lessonID string) (*gormModels.Lesson, error) {
	var lesson gormModels.Lesson

	err := r.db.WithContext(ctx).
		Preload("Prerequisites.PrerequisiteLesson").
		Where("id = ? AND organization_id = ?", lessonID, orgID).
		First(&lesson).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch lesson: %w", err)
	}

	return &lesson, nil
}

// ListByOrg retrieves all lessons for an organization
func (r *LessonRepository) ListByOrg(ctx context.Context, orgID string) ([]gormModels.Lesson, error) {
	var lessons []gormModels.Lesson

	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name").
		Find(&lessons).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch lessons: %w", err)
	}

	return lessons, nil
}

// GetPassedLessonIDs returns the lessons a student has completed, i.e. the
// ones with a debrief graded PASS.
func (r *LessonRepository) GetPassedLessonIDs(ctx context.Context, orgID, studentID string) ([]string, error) {
	var ids []string

	err := r.db.WithContext(ctx).
		Model(&gormModels.Debrief{}).
		Where("organization_id = ? AND student_id = ? AND outcome = ? AND lesson_id IS NOT NULL",
			orgID, studentID, string(constants.OutcomePass)).
		Pluck("lesson_id", &ids).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch passed lessons: %w", err)
	}

	return ids, nil
}

// CreateDebrief inserts a debrief and its graded items in one transaction
func (r *LessonRepository) CreateDebrief(ctx context.Context, debrief *gormModels.Debrief) error {
	if err := r.db.WithContext(ctx).Create(debrief).Error; err != nil {
		return fmt.Errorf("failed to create debrief: %w", err)
	}
	return nil
}

// GetDebriefByBooking retrieves the debrief recorded for a booking, if any
func (r *LessonRepository) GetDebriefByBooking(ctx context.Context, orgID, bookingID string) (*gormModels.Debrief, error) {
	var debrief gormModels.Debrief

	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("organization_id = ? AND booking_id = ?", orgID, bookingID).
		First(&debrief).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch debrief: %w", err)
	}

	return &debrief, nil
}
