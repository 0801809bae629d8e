package repositories

import (
	"context"
	"fmt"

	gormModels "aeroclub/flightdesk/internal/models/gorm"

	"gorm.io/gorm"
)

// AircraftRepository handles aircraft table operations using GORM
type AircraftRepository struct {
	db *gorm.DB
}

// NewAircraftRepository creates a new GORM-based aircraft repository
func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// GetByID retrieves an aircraft with its rate table, scoped to an organization
func (r *AircraftRepository) GetByID(ctx context.Context, orgID, aircraftID string) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Preload("Rates").
		Where("id = ? AND organization_id = ?", aircraftID, orgID).
		First(&aircraft).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &aircraft, nil
}

// ListByOrg retrieves all active aircraft for an organization
func (r *AircraftRepository) ListByOrg(ctx context.Context, orgID string) ([]gormModels.Aircraft, error) {
	var aircraft []gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Order("registration").
		Find(&aircraft).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return aircraft, nil
}

// GetFlightType retrieves one flight type row, (nil, nil) when absent
func (r *AircraftRepository) GetFlightType(ctx context.Context, orgID, flightTypeID string) (*gormModels.FlightType, error) {
	var ft gormModels.FlightType

	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", flightTypeID, orgID).
		First(&ft).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight type: %w", err)
	}

	return &ft, nil
}

// CreateDefect records a reported defect against an aircraft
func (r *AircraftRepository) CreateDefect(ctx context.Context, defect *gormModels.Defect) error {
	if err := r.db.WithContext(ctx).Create(defect).Error; err != nil {
		return fmt.Errorf("failed to create defect: %w", err)
	}
	return nil
}

// ListDefects retrieves the defects reported against an aircraft
func (r *AircraftRepository) ListDefects(ctx context.Context, orgID, aircraftID string) ([]gormModels.Defect, error) {
	var defects []gormModels.Defect

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND aircraft_id = ?", orgID, aircraftID).
		Order("reported_at DESC").
		Find(&defects).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch defects: %w", err)
	}

	return defects, nil
}
