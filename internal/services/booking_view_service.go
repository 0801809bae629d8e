package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/models/dtos"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
)

// BookingViewService assembles the booking detail screen. Each facet loads
// concurrently and carries its own error: a broken join degrades that facet,
// not the whole view.
type BookingViewService struct {
	bookings *repositories.BookingGormRepository
	aircraft *repositories.AircraftRepository
	users    *repositories.UserRepositoryGORM
	lessons  *repositories.LessonRepository
}

func NewBookingViewService(
	bookings *repositories.BookingGormRepository,
	aircraft *repositories.AircraftRepository,
	users *repositories.UserRepositoryGORM,
	lessons *repositories.LessonRepository,
) *BookingViewService {
	return &BookingViewService{
		bookings: bookings,
		aircraft: aircraft,
		users:    users,
		lessons:  lessons,
	}
}

// ResolveRate picks the hourly rate matching a flight type out of an
// aircraft's rate table. Returns nil when no rate matches; callers must
// treat that as "no rate", never as a zero rate.
func ResolveRate(rates []gormModels.AircraftRate, flightTypeID *string) *gormModels.AircraftRate {
	if flightTypeID == nil {
		return nil
	}
	for i := range rates {
		if rates[i].FlightTypeID == *flightTypeID {
			return &rates[i]
		}
	}
	return nil
}

func (svc *BookingViewService) loadBooking(ctx context.Context, claims auth.UserClaims, bookingID string) (*gormModels.Booking, error) {
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

// Load builds the full booking view. The base row must load; everything
// hanging off it is best-effort.
func (svc *BookingViewService) Load(ctx context.Context, claims auth.UserClaims, bookingID string) (*dtos.BookingView, error) {
	booking, err := svc.loadBooking(ctx, claims, bookingID)
	if err != nil {
		return nil, err
	}

	orgID := claims.OrganizationID()
	view := &dtos.BookingView{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		basic, err := svc.basicFacet(gctx, orgID, booking)
		if err != nil {
			view.Basic.Error = err.Error()
			return nil
		}
		view.Basic.Data = basic
		return nil
	})

	g.Go(func() error {
		people, err := svc.peopleFacet(gctx, orgID, booking)
		if err != nil {
			view.People.Error = err.Error()
			return nil
		}
		view.People.Data = people
		return nil
	})

	g.Go(func() error {
		if booking.LessonID == nil {
			return nil
		}
		lesson, err := svc.lessons.GetByID(gctx, orgID, *booking.LessonID)
		if err != nil {
			view.Lesson.Error = err.Error()
			return nil
		}
		if lesson != nil {
			view.Lesson.Data = &dtos.BookingLesson{ID: lesson.ID, Name: lesson.Name}
		}
		return nil
	})

	g.Go(func() error {
		details, err := svc.bookings.GetDetails(gctx, booking.ID)
		if err != nil {
			view.Details.Error = err.Error()
			return nil
		}
		if details != nil {
			view.Details.Data = &dtos.BookingDetailsDTO{
				Route:          details.Route,
				PassengerCount: details.PassengerCount,
				ETA:            details.ETA,
				Comments:       details.Comments,
			}
		}
		return nil
	})

	g.Go(func() error {
		ft, err := svc.bookings.GetFlightTimes(gctx, booking.ID)
		if err != nil {
			view.FlightTimes.Error = err.Error()
			return nil
		}
		if ft != nil {
			view.FlightTimes.Data = &dtos.BookingFlightTimesDTO{
				StartHobbs: ft.StartHobbs,
				EndHobbs:   ft.EndHobbs,
				StartTacho: ft.StartTacho,
				EndTacho:   ft.EndTacho,
				FlightTime: ft.FlightTime,
			}
		}
		return nil
	})

	// facet loaders never return errors, so Wait only fails on a
	// cancelled context
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lc, _ := DeriveLifecycle(booking.Status, booking.BriefingCompleted, booking.DebriefCompleted)
	view.Stages = lc.BuildStageViews(lc.CurrentStage(booking.LessonID != nil))

	return view, nil
}

func (svc *BookingViewService) basicFacet(ctx context.Context, orgID string, booking *gormModels.Booking) (*dtos.BookingBasic, error) {
	status, _ := constants.NormalizeStatus(booking.Status)
	basic := &dtos.BookingBasic{
		ID:                booking.ID,
		StartTime:         booking.StartTime,
		EndTime:           booking.EndTime,
		Status:            string(status),
		Type:              booking.Type,
		BriefingCompleted: booking.BriefingCompleted,
		DebriefCompleted:  booking.DebriefCompleted,
	}

	if booking.AircraftID != nil {
		ac, err := svc.aircraft.GetByID(ctx, orgID, *booking.AircraftID)
		if err != nil {
			return nil, err
		}
		if ac != nil {
			basic.AircraftReg = ac.Registration
		}
	}
	if booking.FlightTypeID != nil {
		ft, err := svc.aircraft.GetFlightType(ctx, orgID, *booking.FlightTypeID)
		if err != nil {
			return nil, err
		}
		if ft != nil {
			basic.FlightTypeName = ft.Name
		}
	}
	return basic, nil
}

func (svc *BookingViewService) peopleFacet(ctx context.Context, orgID string, booking *gormModels.Booking) (*dtos.BookingPeople, error) {
	people := &dtos.BookingPeople{}

	if booking.UserID != nil {
		member, err := svc.users.GetByID(ctx, orgID, *booking.UserID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			people.MemberName = member.DisplayName
		}
	}
	if booking.InstructorID != nil {
		instructor, err := svc.users.GetByID(ctx, orgID, *booking.InstructorID)
		if err != nil {
			return nil, err
		}
		if instructor != nil {
			people.InstructorName = instructor.DisplayName
		}
	}
	return people, nil
}
