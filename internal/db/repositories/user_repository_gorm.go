package repositories

import (
	"context"
	"fmt"

	"aeroclub/flightdesk/internal/constants"
	gormModels "aeroclub/flightdesk/internal/models/gorm"

	"gorm.io/gorm"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// GetByID retrieves a user scoped to an organization
func (r *UserRepositoryGORM) GetByID(ctx context.Context, orgID, userID string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", userID, orgID).
		First(&user).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// ListByOrg retrieves all active members of an organization
func (r *UserRepositoryGORM) ListByOrg(ctx context.Context, orgID string) ([]gormModels.User, error) {
	var users []gormModels.User

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Order("display_name").
		Find(&users).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}

// ListInstructors retrieves the staff rows for the scheduler axis
func (r *UserRepositoryGORM) ListInstructors(ctx context.Context, orgID string) ([]gormModels.User, error) {
	var users []gormModels.User

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ? AND role = ?", orgID, true, constants.RoleInstructor).
		Order("display_name").
		Find(&users).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch instructors: %w", err)
	}

	return users, nil
}
