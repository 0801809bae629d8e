package repositories

import (
	"context"
	"fmt"

	gormModels "aeroclub/flightdesk/internal/models/gorm"

	"gorm.io/gorm"
)

type ChargeableRepository struct {
	db *gorm.DB
}

func NewChargeableRepository(db *gorm.DB) *ChargeableRepository {
	return &ChargeableRepository{db: db}
}

// ListByOrg retrieves the active chargeables for an organization
func (r *ChargeableRepository) ListByOrg(ctx context.Context, orgID string) ([]gormModels.Chargeable, error) {
	var chargeables []gormModels.Chargeable

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Order("name").
		Find(&chargeables).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch chargeables: %w", err)
	}

	return chargeables, nil
}
