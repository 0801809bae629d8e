package repositories

import (
	"context"
	"fmt"
	"time"

	gormModels "aeroclub/flightdesk/internal/models/gorm"

	"gorm.io/gorm"
)

// BookingGormRepository handles booking entity CRUD using GORM
type BookingGormRepository struct {
	db *gorm.DB
}

// NewBookingGormRepository creates a new GORM-based booking repository
func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// GetByID retrieves a booking scoped to the caller's organization.
// Returns (nil, nil) when no such booking exists in that organization.
func (r *BookingGormRepository) GetByID(ctx context.Context, orgID, bookingID string) (*gormModels.Booking, error) {
	var booking gormModels.Booking

	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", bookingID, orgID).
		First(&booking).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return &booking, nil
}

// GetByIDAny retrieves a booking without org scoping, used to distinguish
// 404 from 403 on cross-organization access.
func (r *BookingGormRepository) GetByIDAny(ctx context.Context, bookingID string) (*gormModels.Booking, error) {
	var booking gormModels.Booking

	err := r.db.WithContext(ctx).
		Where("id = ?", bookingID).
		First(&booking).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return &booking, nil
}

// GetWithAssociations preloads every facet relation in one call.
func (r *BookingGormRepository) GetWithAssociations(ctx context.Context, orgID, bookingID string) (*gormModels.Booking, error) {
	var booking gormModels.Booking

	err := r.db.WithContext(ctx).
		Preload("Aircraft").
		Preload("Aircraft.Rates").
		Preload("Instructor").
		Preload("User").
		Preload("Lesson").
		Preload("Details").
		Preload("FlightTimes").
		Where("id = ? AND organization_id = ?", bookingID, orgID).
		First(&booking).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return &booking, nil
}

// List returns the organization's bookings ordered by start time. The time
// bounds are optional; when both are set the filter matches any booking
// overlapping the window.
func (r *BookingGormRepository) List(ctx context.Context, orgID string, from, to *time.Time) ([]gormModels.Booking, error) {
	var bookings []gormModels.Booking

	query := r.db.WithContext(ctx).
		Preload("Aircraft").
		Preload("Instructor").
		Preload("User").
		Where("organization_id = ?", orgID)
	if from != nil {
		query = query.Where("end_time >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_time <= ?", *to)
	}

	if err := query.Order("start_time asc").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Create inserts a booking
func (r *BookingGormRepository) Create(ctx context.Context, booking *gormModels.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Save persists the given booking fields
func (r *BookingGormRepository) Save(ctx context.Context, booking *gormModels.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

// UpdateStatus sets the persisted status string for a booking
func (r *BookingGormRepository) UpdateStatus(ctx context.Context, orgID, bookingID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Booking{}).
		Where("id = ? AND organization_id = ?", bookingID, orgID).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("booking not found with ID: %s", bookingID)
	}
	return nil
}

// SetFlag flips one of the lifecycle flags (briefing_completed /
// debrief_completed). The flags are independent of status.
func (r *BookingGormRepository) SetFlag(ctx context.Context, orgID, bookingID, column string, value bool) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Booking{}).
		Where("id = ? AND organization_id = ?", bookingID, orgID).
		Update(column, value)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("booking not found with ID: %s", bookingID)
	}
	return nil
}

// CreateDetails inserts the checkout-time BookingDetails record
func (r *BookingGormRepository) CreateDetails(ctx context.Context, details *gormModels.BookingDetails) error {
	if err := r.db.WithContext(ctx).Create(details).Error; err != nil {
		return fmt.Errorf("failed to create booking details: %w", err)
	}
	return nil
}

// DeleteDetails removes an orphaned BookingDetails record (compensation when
// the follow-up status write fails)
func (r *BookingGormRepository) DeleteDetails(ctx context.Context, detailsID string) error {
	if err := r.db.WithContext(ctx).Delete(&gormModels.BookingDetails{}, "id = ?", detailsID).Error; err != nil {
		return fmt.Errorf("failed to delete booking details: %w", err)
	}
	return nil
}

// GetDetails retrieves the checkout record for a booking, (nil, nil) if the
// booking has not been checked out.
func (r *BookingGormRepository) GetDetails(ctx context.Context, bookingID string) (*gormModels.BookingDetails, error) {
	var details gormModels.BookingDetails

	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&details).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking details: %w", err)
	}

	return &details, nil
}

// GetFlightTimes retrieves the check-in record for a booking, (nil, nil) if
// the booking has not been checked in.
func (r *BookingGormRepository) GetFlightTimes(ctx context.Context, bookingID string) (*gormModels.BookingFlightTimes, error) {
	var ft gormModels.BookingFlightTimes

	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&ft).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight times: %w", err)
	}

	return &ft, nil
}

// CreateFlightTimes inserts the check-in-time BookingFlightTimes record
func (r *BookingGormRepository) CreateFlightTimes(ctx context.Context, ft *gormModels.BookingFlightTimes) error {
	if err := r.db.WithContext(ctx).Create(ft).Error; err != nil {
		return fmt.Errorf("failed to create flight times: %w", err)
	}
	return nil
}

// DeleteFlightTimes removes an orphaned BookingFlightTimes record
func (r *BookingGormRepository) DeleteFlightTimes(ctx context.Context, ftID string) error {
	if err := r.db.WithContext(ctx).Delete(&gormModels.BookingFlightTimes{}, "id = ?", ftID).Error; err != nil {
		return fmt.Errorf("failed to delete flight times: %w", err)
	}
	return nil
}
