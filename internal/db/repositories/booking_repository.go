package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// BookingRepository covers the join-heavy reads and raw updates the
// scheduler needs; entity CRUD lives in BookingGormRepository.
type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db}
}

// FindConflicts returns the confirmed bookings that overlap the candidate
// interval for one resource. Closed-interval test: touching endpoints
// conflict. excludeID skips the booking being edited.
func (r *BookingRepository) FindConflicts(
	ctx context.Context,
	orgID string,
	kind constants.ResourceKind,
	resourceID string,
	start, end time.Time,
	excludeID *string,
) ([]entities.BookingRow, error) {

	query := constants.FindAircraftConflicts
	if kind == constants.ResourceInstructor {
		query = constants.FindInstructorConflicts
	}

	var rows []entities.BookingRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID, resourceID, start, end, excludeID); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDay returns the bookings intersecting the day window, with display
// names joined in for the scheduler projection.
func (r *BookingRepository) ListDay(ctx context.Context, orgID string, dayStart, dayEnd time.Time) ([]entities.DayBookingRow, error) {
	var rows []entities.DayBookingRow
	if err := r.db.SelectContext(ctx, &rows, constants.ListDayBookings, orgID, dayStart, dayEnd); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateTimes moves a booking. The store's exclusion constraint may still
// reject the write; callers should translate that with IsExclusionViolation.
func (r *BookingRepository) UpdateTimes(ctx context.Context, orgID, bookingID string, start, end time.Time) error {
	res, err := r.db.ExecContext(ctx, constants.UpdateBookingTimes, bookingID, orgID, start, end)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

var ErrNoRowsUpdated = errors.New("no rows updated")

// IsExclusionViolation reports whether err is the store rejecting a write
// through one of the no-overlap exclusion constraints.
func IsExclusionViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01"
	}
	// gorm wraps driver errors; fall back to the constraint names
	return strings.Contains(err.Error(), "_no_overlap")
}
