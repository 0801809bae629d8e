package services

import (
	"context"
	"math"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/logging"
	"aeroclub/flightdesk/internal/metrics"
	"aeroclub/flightdesk/internal/models/dtos"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
)

// TechLogRecorder creates the aircraft tech log entry after a flight. In
// production this is the create_tech_log_entry stored procedure.
type TechLogRecorder interface {
	CreateTechLogEntry(ctx context.Context, bookingFlightTimesID string) (string, error)
}

// WorkflowService owns the booking stage transitions. Each transition
// validates its own prerequisites, but the store acknowledging the write is
// what makes a transition real.
type WorkflowService struct {
	bookings *repositories.BookingGormRepository
	aircraft *repositories.AircraftRepository
	lessons  *repositories.LessonRepository
	techLog  TechLogRecorder
	metrics  *metrics.MetricsRegistry
}

func NewWorkflowService(
	bookings *repositories.BookingGormRepository,
	aircraft *repositories.AircraftRepository,
	lessons *repositories.LessonRepository,
	techLog TechLogRecorder,
	metricsReg *metrics.MetricsRegistry,
) *WorkflowService {
	return &WorkflowService{
		bookings: bookings,
		aircraft: aircraft,
		lessons:  lessons,
		techLog:  techLog,
		metrics:  metricsReg,
	}
}

// loadBooking fetches org-scoped, distinguishing 404 from cross-org 403.
func (svc *WorkflowService) loadBooking(ctx context.Context, claims auth.UserClaims, bookingID string) (*gormModels.Booking, error) {
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

// CompleteBriefing marks the briefing stage done. This is an explicit
// action; merely opening the briefing screen changes nothing.
func (svc *WorkflowService) CompleteBriefing(ctx context.Context, claims auth.UserClaims, bookingID string) error {
	booking, err := svc.loadBooking(ctx, claims, bookingID)
	if err != nil {
		return err
	}

	lc, _ := DeriveLifecycle(booking.Status, booking.BriefingCompleted, booking.DebriefCompleted)
	if lc.Status == constants.StatusCancelled {
		return NewValidationError("Cannot brief a cancelled booking")
	}

	return svc.bookings.SetFlag(ctx, claims.OrganizationID(), bookingID, "briefing_completed", true)
}

// Checkout moves a booking to flying. The BookingDetails record (route,
// passengers, ETA) is created first; if the status write then fails the
// orphaned details row is deleted again.
func (svc *WorkflowService) Checkout(ctx context.Context, claims auth.UserClaims, bookingID string, req dtos.CheckoutReq) error {
	booking, err := svc.loadBooking(ctx, claims, bookingID)
	if err != nil {
		return err
	}

	lc, _ := DeriveLifecycle(booking.Status, booking.BriefingCompleted, booking.DebriefCompleted)
	if lc.Status == constants.StatusFlying {
		return NewValidationError(constants.MsgAlreadyCheckedOut)
	}
	if !lc.CanCheckout() {
		return NewValidationError("Booking cannot be checked out in its current state")
	}
	if booking.LessonID != nil && !lc.BriefingDone {
		return NewValidationError(constants.MsgBriefingIncomplete)
	}

	details := &gormModels.BookingDetails{
		BookingID:      bookingID,
		Route:          req.Route,
		PassengerCount: req.PassengerCount,
		ETA:            req.ETA,
		Comments:       req.Comments,
	}
	if err := svc.bookings.CreateDetails(ctx, details); err != nil {
		return err
	}

	if err := svc.bookings.UpdateStatus(ctx, claims.OrganizationID(), bookingID, string(constants.StatusFlying)); err != nil {
		if delErr := svc.bookings.DeleteDetails(ctx, details.ID); delErr != nil {
			logging.Error("Failed to compensate orphaned booking details",
				"booking_id", bookingID, "details_id", details.ID, "error", delErr.Error())
		}
		return err
	}

	return nil
}

// roundMeter rounds a meter delta to the tenth the meters themselves show.
func roundMeter(v float64) float64 {
	return math.Round(v*10) / 10
}

// CheckIn closes the flight: validates the end readings against the
// aircraft tech log, records BookingFlightTimes with the computed
// flight_time, writes the tech log entry, and completes the booking.
func (svc *WorkflowService) CheckIn(ctx context.Context, claims auth.UserClaims, bookingID string, req dtos.CheckinReq) (*dtos.BookingFlightTimesDTO, error) {
	booking, err := svc.loadBooking(ctx, claims, bookingID)
	if err != nil {
		return nil, err
	}

	lc, _ := DeriveLifecycle(booking.Status, booking.BriefingCompleted, booking.DebriefCompleted)
	if !lc.CanCheckIn() {
		return nil, NewValidationError("Booking is not flying; nothing to check in")
	}
	if booking.AircraftID == nil {
		return nil, NewValidationError("Booking has no aircraft to check in")
	}
	if req.RateID == "" {
		return nil, NewValidationError(constants.MsgRateRequired)
	}

	aircraft, err := svc.aircraft.GetByID(ctx, claims.OrganizationID(), *booking.AircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, NewNotFoundError("Aircraft not found")
	}

	rateKnown := false
	for _, rate := range aircraft.Rates {
		if rate.ID == req.RateID {
			rateKnown = true
			break
		}
	}
	if !rateKnown {
		return nil, NewValidationError(constants.MsgRateRequired)
	}

	hobbsDelta := req.EndHobbs - aircraft.CurrentHobbs
	tachoDelta := req.EndTacho - aircraft.CurrentTacho
	if hobbsDelta <= constants.MeterEpsilon || tachoDelta <= constants.MeterEpsilon {
		return nil, NewValidationError(constants.MsgMeterDeltaInvalid)
	}

	flightTime := roundMeter(hobbsDelta)

	ft := &gormModels.BookingFlightTimes{
		BookingID:  bookingID,
		StartHobbs: aircraft.CurrentHobbs,
		EndHobbs:   req.EndHobbs,
		StartTacho: aircraft.CurrentTacho,
		EndTacho:   req.EndTacho,
		FlightTime: flightTime,
		RateID:     &req.RateID,
	}
	if err := svc.bookings.CreateFlightTimes(ctx, ft); err != nil {
		return nil, err
	}

	if _, err := svc.techLog.CreateTechLogEntry(ctx, ft.ID); err != nil {
		if delErr := svc.bookings.DeleteFlightTimes(ctx, ft.ID); delErr != nil {
			logging.Error("Failed to compensate orphaned flight times",
				"booking_id", bookingID, "flight_times_id", ft.ID, "error", delErr.Error())
		}
		return nil, err
	}

	if err := svc.bookings.UpdateStatus(ctx, claims.OrganizationID(), bookingID, string(constants.StatusComplete)); err != nil {
		return nil, err
	}

	if svc.metrics != nil {
		svc.metrics.CheckinsCompletedTotal.Inc()
	}

	return &dtos.BookingFlightTimesDTO{
		StartHobbs: ft.StartHobbs,
		EndHobbs:   ft.EndHobbs,
		StartTacho: ft.StartTacho,
		EndTacho:   ft.EndTacho,
		FlightTime: ft.FlightTime,
	}, nil
}

// CompleteDebrief records the instructor's assessment. It can run before or
// after check-in; only the submission guards are enforced here.
func (svc *WorkflowService) CompleteDebrief(ctx context.Context, claims auth.UserClaims, bookingID string, req dtos.DebriefReq) error {
	booking, err := svc.loadBooking(ctx, claims, bookingID)
	if err != nil {
		return err
	}

	lc, _ := DeriveLifecycle(booking.Status, booking.BriefingCompleted, booking.DebriefCompleted)
	if !lc.CanDebrief() {
		return NewValidationError("Cannot debrief a cancelled booking")
	}

	if !constants.ValidOutcome(req.Outcome) {
		return NewValidationError(constants.MsgDebriefNeedsOutcome)
	}

	graded := 0
	for _, item := range req.Items {
		if item.Score > 0 {
			graded++
		}
	}
	if graded == 0 {
		return NewValidationError(constants.MsgDebriefNeedsGrades)
	}

	instructorID := claims.UserID()
	debrief := &gormModels.Debrief{
		OrganizationID: claims.OrganizationID(),
		BookingID:      bookingID,
		LessonID:       booking.LessonID,
		StudentID:      booking.UserID,
		InstructorID:   &instructorID,
		Outcome:        req.Outcome,
		Comments:       req.Comments,
	}
	for _, item := range req.Items {
		debrief.Items = append(debrief.Items, gormModels.DebriefItem{
			Criterion: item.Criterion,
			Score:     item.Score,
		})
	}

	if err := svc.lessons.CreateDebrief(ctx, debrief); err != nil {
		return err
	}

	return svc.bookings.SetFlag(ctx, claims.OrganizationID(), bookingID, "debrief_completed", true)
}

// StageViews renders the workflow progress for a booking around the
// caller's current screen.
func (svc *WorkflowService) StageViews(ctx context.Context, claims auth.UserClaims, bookingID string, current constants.Stage) ([]dtos.StageView, error) {
	booking, err := svc.loadBooking(ctx, claims, bookingID)
	if err != nil {
		return nil, err
	}

	lc, recognized := DeriveLifecycle(booking.Status, booking.BriefingCompleted, booking.DebriefCompleted)
	if !recognized {
		logging.Warn("Unrecognized booking status folded to pending",
			"booking_id", bookingID, "raw_status", booking.Status)
		if svc.metrics != nil {
			svc.metrics.StatusFallbackTotal.WithLabelValues(booking.Status).Inc()
		}
	}

	return lc.BuildStageViews(current), nil
}
