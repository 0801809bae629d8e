package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/logging"
	"aeroclub/flightdesk/internal/metrics"
	"aeroclub/flightdesk/internal/models/dtos"
	"aeroclub/flightdesk/internal/models/entities"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
	"aeroclub/flightdesk/internal/scheduler"
)

// TimelineStore is the raw-SQL side of the scheduler: the join-heavy day
// query and the guarded time update live behind it so the service stays
// testable without Postgres.
type TimelineStore interface {
	ListDay(ctx context.Context, orgID string, dayStart, dayEnd time.Time) ([]entities.DayBookingRow, error)
	UpdateTimes(ctx context.Context, orgID, bookingID string, start, end time.Time) error
}

// ResourceLister provides the rows of the scheduler's vertical axis.
type ResourceLister interface {
	ListAircraft(ctx context.Context, orgID string) ([]dtos.Resource, error)
	ListInstructors(ctx context.Context, orgID string) ([]dtos.Resource, error)
}

const dayViewCacheTTL = 30 * time.Second

// SchedulerService renders the day grid and applies drag reschedules.
type SchedulerService struct {
	timeline     TimelineStore
	bookings     *repositories.BookingGormRepository
	resources    ResourceLister
	availability *AvailabilityService
	cache        common.CacheInterface
	metrics      *metrics.MetricsRegistry
}

func NewSchedulerService(
	timeline TimelineStore,
	bookings *repositories.BookingGormRepository,
	resources ResourceLister,
	availability *AvailabilityService,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *SchedulerService {
	return &SchedulerService{
		timeline:     timeline,
		bookings:     bookings,
		resources:    resources,
		availability: availability,
		cache:        cache,
		metrics:      metricsReg,
	}
}

func dayCacheKey(orgID string, date time.Time) string {
	return string(constants.CachePrefixDaySchedule) + orgID + "_" + date.Format("2006-01-02")
}

// DayView builds the scheduler grid for one day: resource rows plus every
// booking intersecting the 8:00-19:00 window, projected to pixels.
func (svc *SchedulerService) DayView(ctx context.Context, claims auth.UserClaims, date time.Time) (*dtos.SchedulerDay, error) {
	orgID := claims.OrganizationID()

	if svc.cache != nil {
		if cached, found := svc.cache.Get(dayCacheKey(orgID, date)); found {
			if day, ok := cached.(*dtos.SchedulerDay); ok {
				if svc.metrics != nil {
					svc.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixDaySchedule)).Inc()
				}
				return day, nil
			}
		}
		if svc.metrics != nil {
			svc.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixDaySchedule)).Inc()
		}
	}

	day, err := svc.buildDayView(ctx, orgID, date)
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		svc.cache.Set(dayCacheKey(orgID, date), day, dayViewCacheTTL)
	}
	return day, nil
}

func (svc *SchedulerService) buildDayView(ctx context.Context, orgID string, date time.Time) (*dtos.SchedulerDay, error) {
	bounds := now.New(date)
	dayStart := bounds.BeginningOfDay()
	dayEnd := bounds.EndOfDay()

	aircraft, err := svc.resources.ListAircraft(ctx, orgID)
	if err != nil {
		return nil, err
	}
	instructors, err := svc.resources.ListInstructors(ctx, orgID)
	if err != nil {
		return nil, err
	}

	rows, err := svc.timeline.ListDay(ctx, orgID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	bookings := make([]dtos.SchedulerBooking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, svc.projectRow(row))
	}

	day := &dtos.SchedulerDay{
		Date:      date.Format("2006-01-02"),
		Resources: append(aircraft, instructors...),
		Bookings:  bookings,
	}
	return day, nil
}

// projectRow folds a raw day row into its timeline projection. The UUID is
// a per-render key the grid uses to track drag state client-side.
func (svc *SchedulerService) projectRow(row entities.DayBookingRow) dtos.SchedulerBooking {
	status, recognized := constants.NormalizeStatus(row.Status)
	if !recognized {
		logging.Warn("Unrecognized booking status folded to pending",
			"booking_id", row.ID, "raw_status", row.Status)
		if svc.metrics != nil {
			svc.metrics.StatusFallbackTotal.WithLabelValues(row.Status).Inc()
		}
	}

	b := dtos.SchedulerBooking{
		ID:           row.ID,
		UUID:         uuid.NewString(),
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		Status:       status,
		Type:         row.Type,
		AircraftID:   row.AircraftID,
		InstructorID: row.InstructorID,
		Left:         scheduler.SlotLeft(row.StartTime, scheduler.DefaultColumnWidth),
		Width:        scheduler.SlotWidth(row.StartTime, row.EndTime, scheduler.DefaultColumnWidth),
	}
	if row.AircraftRegistration != nil {
		b.AircraftName = *row.AircraftRegistration
	}
	if row.InstructorName != nil {
		b.InstructorName = *row.InstructorName
	}
	if row.MemberName != nil {
		b.MemberName = *row.MemberName
	}
	return b
}

// loadBooking mirrors WorkflowService.loadBooking: org-scoped fetch with the
// cross-org case surfaced as forbidden rather than not found.
func (svc *SchedulerService) loadBooking(ctx context.Context, claims auth.UserClaims, bookingID string) (*gormModels.Booking, error) {
	booking, err := svc.bookings.GetByID(ctx, claims.OrganizationID(), bookingID)
	if err != nil {
		return nil, err
	}
	if booking != nil {
		return booking, nil
	}
	other, err := svc.bookings.GetByIDAny(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if other != nil {
		return nil, NewForbiddenError(constants.MsgCrossOrganization)
	}
	return nil, NewNotFoundError(constants.MsgBookingNotFound)
}

// ProposeReschedule interprets a drag against the booking's persisted times.
// Pure read: nothing is written until the proposal is confirmed.
func (svc *SchedulerService) ProposeReschedule(ctx context.Context, claims auth.UserClaims, req dtos.RescheduleReq) (*scheduler.Proposal, error) {
	booking, err := svc.loadBooking(ctx, claims, req.BookingID)
	if err != nil {
		return nil, err
	}

	proposal, ok := scheduler.ProposeDrag(booking.StartTime, booking.EndTime, req.PixelDeltaX, req.ColumnWidth)
	if !ok {
		return nil, NewValidationError(constants.MsgDragBelowThreshold)
	}
	return &proposal, nil
}

// ConfirmReschedule applies a drag. The hour delta is recomputed from the
// persisted times, the target slot is re-validated excluding the booking
// itself, and only then are the times written. On any conflict, app-level
// or store-level, the booking keeps its original times.
func (svc *SchedulerService) ConfirmReschedule(ctx context.Context, claims auth.UserClaims, req dtos.RescheduleReq) (*dtos.SchedulerDay, error) {
	orgID := claims.OrganizationID()

	booking, err := svc.loadBooking(ctx, claims, req.BookingID)
	if err != nil {
		return nil, err
	}

	proposal, ok := scheduler.ProposeDrag(booking.StartTime, booking.EndTime, req.PixelDeltaX, req.ColumnWidth)
	if !ok {
		return nil, NewValidationError(constants.MsgDragBelowThreshold)
	}

	if err := svc.availability.CheckBookingSlot(ctx, orgID,
		booking.AircraftID, booking.InstructorID,
		proposal.NewStart, proposal.NewEnd, &booking.ID); err != nil {
		return nil, err
	}

	if err := svc.timeline.UpdateTimes(ctx, orgID, booking.ID, proposal.NewStart, proposal.NewEnd); err != nil {
		if repositories.IsExclusionViolation(err) {
			// lost the race: someone confirmed an overlapping booking
			// between our check and our write
			if svc.metrics != nil {
				svc.metrics.SchedulingConflictsTotal.WithLabelValues(string(constants.ResourceAircraft)).Inc()
			}
			return nil, &SlotUnavailableError{}
		}
		return nil, err
	}

	if svc.cache != nil {
		svc.cache.Delete(dayCacheKey(orgID, booking.StartTime))
		svc.cache.Delete(dayCacheKey(orgID, proposal.NewStart))
	}
	if svc.metrics != nil {
		svc.metrics.ReschedulesConfirmedTotal.Inc()
	}
	logging.Info("Booking rescheduled",
		"booking_id", booking.ID,
		"organization_id", orgID,
		"hours_delta", proposal.HoursDelta,
	)

	return svc.buildDayView(ctx, orgID, proposal.NewStart)
}
