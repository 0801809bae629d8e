package services

import (
	"context"
	"time"

	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/logging"
	"aeroclub/flightdesk/internal/metrics"
	"aeroclub/flightdesk/internal/models/dtos"
	"aeroclub/flightdesk/internal/models/entities"
)

// ConflictFinder is the read side of the overlap check.
type ConflictFinder interface {
	FindConflicts(ctx context.Context, orgID string, kind constants.ResourceKind, resourceID string,
		start, end time.Time, excludeID *string) ([]entities.BookingRow, error)
}

// AvailabilityService answers "is this slot free". It is read-only and
// advisory: the caller must re-run it immediately before any write, and the
// store's exclusion constraint remains the actual guarantee.
type AvailabilityService struct {
	repo    ConflictFinder
	metrics *metrics.MetricsRegistry
}

func NewAvailabilityService(repo ConflictFinder, metricsReg *metrics.MetricsRegistry) *AvailabilityService {
	return &AvailabilityService{
		repo:    repo,
		metrics: metricsReg,
	}
}

// CheckSlot validates the candidate interval against the confirmed bookings
// of one resource. A malformed interval is a validation error, never a
// conflict. Returns SlotUnavailableError carrying the blockers on overlap.
func (svc *AvailabilityService) CheckSlot(
	ctx context.Context,
	orgID string,
	kind constants.ResourceKind,
	resourceID string,
	start, end time.Time,
	excludeBookingID *string,
) error {
	if !end.After(start) {
		return NewValidationError(constants.MsgEndBeforeStart)
	}

	rows, err := svc.repo.FindConflicts(ctx, orgID, kind, resourceID, start, end, excludeBookingID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	conflicts := make([]dtos.ConflictingBooking, 0, len(rows))
	for _, row := range rows {
		conflicts = append(conflicts, dtos.ConflictingBooking{
			ID:           row.ID,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			AircraftID:   row.AircraftID,
			InstructorID: row.InstructorID,
		})
	}

	if svc.metrics != nil {
		svc.metrics.SchedulingConflictsTotal.WithLabelValues(string(kind)).Inc()
	}
	logging.Info("Slot conflict detected",
		"organization_id", orgID,
		"resource_kind", string(kind),
		"resource_id", resourceID,
		"conflicts", len(conflicts),
	)

	return &SlotUnavailableError{Conflicts: conflicts}
}

// CheckBookingSlot runs CheckSlot for every resource the booking holds.
// Aircraft first: that is the message users expect to see on a double-booked
// plane even when the instructor clashes too.
func (svc *AvailabilityService) CheckBookingSlot(
	ctx context.Context,
	orgID string,
	aircraftID, instructorID *string,
	start, end time.Time,
	excludeBookingID *string,
) error {
	if aircraftID != nil && *aircraftID != "" {
		if err := svc.CheckSlot(ctx, orgID, constants.ResourceAircraft, *aircraftID, start, end, excludeBookingID); err != nil {
			return err
		}
	}
	if instructorID != nil && *instructorID != "" {
		if err := svc.CheckSlot(ctx, orgID, constants.ResourceInstructor, *instructorID, start, end, excludeBookingID); err != nil {
			return err
		}
	}
	return nil
}
