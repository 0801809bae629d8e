package services

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/logging"
	"aeroclub/flightdesk/internal/metrics"
	"aeroclub/flightdesk/internal/models/dtos"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
)

// BookingService owns booking CRUD. Times are always re-derived server-side
// from the submitted date and wall-clock fields; whatever timestamps the
// client computed are ignored.
type BookingService struct {
	bookings     *repositories.BookingGormRepository
	lessons      *repositories.LessonRepository
	availability *AvailabilityService
	location     *time.Location
	metrics      *metrics.MetricsRegistry
}

func NewBookingService(
	bookings *repositories.BookingGormRepository,
	lessons *repositories.LessonRepository,
	availability *AvailabilityService,
	location *time.Location,
	metricsReg *metrics.MetricsRegistry,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		lessons:      lessons,
		availability: availability,
		location:     location,
		metrics:      metricsReg,
	}
}

func (svc *BookingService) deriveInterval(date, startClock, endClock string) (time.Time, time.Time, error) {
	start, err := common.CombineDateTime(date, startClock, svc.location)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError(err.Error())
	}
	end, err := common.CombineDateTime(date, endClock, svc.location)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError(err.Error())
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, NewValidationError(constants.MsgEndBeforeStart)
	}
	return start, end, nil
}

// Create validates the slot and inserts the booking. Only a confirmed
// booking holds its resources, so the overlap check runs when the booking
// lands as confirmed.
func (svc *BookingService) Create(ctx context.Context, claims auth.UserClaims, req dtos.CreateBookingReq) (*gormModels.Booking, error) {
	orgID := claims.OrganizationID()

	start, end, err := svc.deriveInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	status, _ := constants.NormalizeStatus(req.Status)
	if status == constants.StatusConfirmed {
		if err := svc.availability.CheckBookingSlot(ctx, orgID, req.AircraftID, req.InstructorID, start, end, nil); err != nil {
			return nil, err
		}
	}

	bookingType := req.Type
	if bookingType == "" {
		bookingType = string(constants.TypeFlight)
	}
	userID := req.UserID
	if userID == nil {
		id := claims.UserID()
		userID = &id
	}

	booking := &gormModels.Booking{
		OrganizationID: orgID,
		StartTime:      start,
		EndTime:        end,
		Type:           bookingType,
		Status:         string(status),
		AircraftID:     req.AircraftID,
		InstructorID:   req.InstructorID,
		UserID:         userID,
		LessonID:       req.LessonID,
		FlightTypeID:   req.FlightTypeID,
	}
	if err := svc.bookings.Create(ctx, booking); err != nil {
		if repositories.IsExclusionViolation(err) {
			return nil, &SlotUnavailableError{}
		}
		return nil, err
	}

	if svc.metrics != nil {
		svc.metrics.BookingsCreatedTotal.Inc()
	}
	logging.Info("Booking created",
		"booking_id", booking.ID,
		"organization_id", orgID,
		"status", booking.Status,
	)
	return booking, nil
}

// List returns the organization's bookings, optionally narrowed to one day.
func (svc *BookingService) List(ctx context.Context, claims auth.UserClaims, date string) ([]gormModels.Booking, error) {
	var from, to *time.Time
	if date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, svc.loc())
		if err != nil {
			return nil, NewValidationError("Invalid date, expected YYYY-MM-DD")
		}
		start := now.New(day).BeginningOfDay()
		end := now.New(day).EndOfDay()
		from, to = &start, &end
	}
	return svc.bookings.List(ctx, claims.OrganizationID(), from, to)
}

func (svc *BookingService) loadBooking(ctx context.Context, claims auth.UserClaims, bookingID string) (*gormModels.Booking, error) {
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

// Update patches a booking. Any change touching times, resources or status
// re-runs the overlap check excluding the booking itself.
func (svc *BookingService) Update(ctx context.Context, claims auth.UserClaims, bookingID string, req dtos.UpdateBookingReq) (*gormModels.Booking, error) {
	orgID := claims.OrganizationID()

	booking, err := svc.loadBooking(ctx, claims, bookingID)
	if err != nil {
		return nil, err
	}

	date := booking.StartTime.In(svc.loc()).Format("2006-01-02")
	startClock := booking.StartTime.In(svc.loc()).Format("15:04")
	endClock := booking.EndTime.In(svc.loc()).Format("15:04")
	if req.Date != nil {
		date = *req.Date
	}
	if req.StartTime != nil {
		startClock = *req.StartTime
	}
	if req.EndTime != nil {
		endClock = *req.EndTime
	}
	start, end, err := svc.deriveInterval(date, startClock, endClock)
	if err != nil {
		return nil, err
	}

	if req.AircraftID != nil {
		booking.AircraftID = req.AircraftID
	}
	if req.InstructorID != nil {
		booking.InstructorID = req.InstructorID
	}
	status, _ := constants.NormalizeStatus(booking.Status)
	if req.Status != nil {
		status, _ = constants.NormalizeStatus(*req.Status)
	}

	if status == constants.StatusConfirmed {
		if err := svc.availability.CheckBookingSlot(ctx, orgID, booking.AircraftID, booking.InstructorID, start, end, &booking.ID); err != nil {
			return nil, err
		}
	}

	booking.StartTime = start
	booking.EndTime = end
	booking.Status = string(status)
	if err := svc.bookings.Save(ctx, booking); err != nil {
		if repositories.IsExclusionViolation(err) {
			return nil, &SlotUnavailableError{}
		}
		return nil, err
	}
	return booking, nil
}

// Get returns one booking with its associations preloaded.
func (svc *BookingService) Get(ctx context.Context, claims auth.UserClaims, bookingID string) (*gormModels.Booking, error) {
	booking, err := svc.bookings.GetWithAssociations(ctx, claims.OrganizationID(), bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		// fall through to the 403/404 split
		return svc.loadBooking(ctx, claims, bookingID)
	}
	return booking, nil
}

// CheckPrerequisites reports whether a student has passed every lesson the
// target lesson requires.
func (svc *BookingService) CheckPrerequisites(ctx context.Context, claims auth.UserClaims, studentID, lessonID string) (*dtos.PrerequisiteCheck, error) {
	orgID := claims.OrganizationID()

	lesson, err := svc.lessons.GetByID(ctx, orgID, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, NewNotFoundError("Lesson not found")
	}

	if len(lesson.Prerequisites) == 0 {
		return &dtos.PrerequisiteCheck{Status: "ok"}, nil
	}

	passedIDs, err := svc.lessons.GetPassedLessonIDs(ctx, orgID, studentID)
	if err != nil {
		return nil, err
	}
	passed := make(map[string]bool, len(passedIDs))
	for _, id := range passedIDs {
		passed[id] = true
	}

	var missing []string
	for _, prereq := range lesson.Prerequisites {
		if !passed[prereq.PrerequisiteLessonID] {
			name := prereq.PrerequisiteLessonID
			if prereq.PrerequisiteLesson != nil {
				name = prereq.PrerequisiteLesson.Name
			}
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &dtos.PrerequisiteCheck{Status: "missing", MissingPrerequisites: missing}, nil
	}
	return &dtos.PrerequisiteCheck{Status: "ok"}, nil
}

func (svc *BookingService) loc() *time.Location {
	if svc.location != nil {
		return svc.location
	}
	return time.Local
}
