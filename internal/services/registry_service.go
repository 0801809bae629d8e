package services

import (
	"context"
	"time"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/models/dtos"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
)

const aircraftListCacheTTL = 5 * time.Minute

// RegistryService serves the club's reference data: the aircraft fleet,
// members and staff, lessons and chargeables. It also feeds the scheduler
// its resource axis.
type RegistryService struct {
	aircraft    *repositories.AircraftRepository
	users       *repositories.UserRepositoryGORM
	lessons     *repositories.LessonRepository
	chargeables *repositories.ChargeableRepository
	cache       common.CacheInterface
}

var _ ResourceLister = (*RegistryService)(nil)

func NewRegistryService(
	aircraft *repositories.AircraftRepository,
	users *repositories.UserRepositoryGORM,
	lessons *repositories.LessonRepository,
	chargeables *repositories.ChargeableRepository,
	cache common.CacheInterface,
) *RegistryService {
	return &RegistryService{
		aircraft:    aircraft,
		users:       users,
		lessons:     lessons,
		chargeables: chargeables,
		cache:       cache,
	}
}

// ListAircraft returns the active fleet as scheduler resources. The fleet
// changes rarely, so the list is cached.
func (svc *RegistryService) ListAircraft(ctx context.Context, orgID string) ([]dtos.Resource, error) {
	key := string(constants.CachePrefixAircraftList) + orgID

	if svc.cache != nil {
		if cached, found := svc.cache.Get(key); found {
			if resources, ok := cached.([]dtos.Resource); ok {
				return resources, nil
			}
		}
	}

	fleet, err := svc.aircraft.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resources := make([]dtos.Resource, 0, len(fleet))
	for _, ac := range fleet {
		resources = append(resources, dtos.Resource{
			ID:   ac.ID,
			Name: ac.Registration,
			Kind: constants.ResourceAircraft,
		})
	}

	if svc.cache != nil {
		svc.cache.Set(key, resources, aircraftListCacheTTL)
	}
	return resources, nil
}

// ListInstructors returns the staff rows of the scheduler axis.
func (svc *RegistryService) ListInstructors(ctx context.Context, orgID string) ([]dtos.Resource, error) {
	instructors, err := svc.users.ListInstructors(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resources := make([]dtos.Resource, 0, len(instructors))
	for _, u := range instructors {
		resources = append(resources, dtos.Resource{
			ID:   u.ID,
			Name: u.DisplayName,
			Kind: constants.ResourceInstructor,
		})
	}
	return resources, nil
}

// ListFleet returns the full aircraft rows for the fleet screen.
func (svc *RegistryService) ListFleet(ctx context.Context, claims auth.UserClaims) ([]gormModels.Aircraft, error) {
	return svc.aircraft.ListByOrg(ctx, claims.OrganizationID())
}

// GetAircraft returns one aircraft with its rate table.
func (svc *RegistryService) GetAircraft(ctx context.Context, claims auth.UserClaims, aircraftID string) (*gormModels.Aircraft, error) {
	ac, err := svc.aircraft.GetByID(ctx, claims.OrganizationID(), aircraftID)
	if err != nil {
		return nil, err
	}
	if ac == nil {
		return nil, NewNotFoundError("Aircraft not found")
	}
	return ac, nil
}

// ReportDefect records a defect against an aircraft and invalidates the
// cached fleet list so the defect shows up on the next load.
func (svc *RegistryService) ReportDefect(ctx context.Context, claims auth.UserClaims, aircraftID string, req dtos.DefectReq) (*gormModels.Defect, error) {
	if req.Description == "" {
		return nil, NewValidationError("Defect description is required")
	}

	ac, err := svc.aircraft.GetByID(ctx, claims.OrganizationID(), aircraftID)
	if err != nil {
		return nil, err
	}
	if ac == nil {
		return nil, NewNotFoundError("Aircraft not found")
	}

	defect := &gormModels.Defect{
		OrganizationID: claims.OrganizationID(),
		AircraftID:     aircraftID,
		ReportedByID:   claims.UserID(),
		Description:    req.Description,
	}
	if err := svc.aircraft.CreateDefect(ctx, defect); err != nil {
		return nil, err
	}

	if svc.cache != nil {
		svc.cache.Delete(string(constants.CachePrefixAircraftList) + claims.OrganizationID())
	}
	return defect, nil
}

// ListDefects returns the defects reported against an aircraft.
func (svc *RegistryService) ListDefects(ctx context.Context, claims auth.UserClaims, aircraftID string) ([]gormModels.Defect, error) {
	return svc.aircraft.ListDefects(ctx, claims.OrganizationID(), aircraftID)
}

// ListMembers returns the active members of the caller's organization.
func (svc *RegistryService) ListMembers(ctx context.Context, claims auth.UserClaims) ([]gormModels.User, error) {
	return svc.users.ListByOrg(ctx, claims.OrganizationID())
}

// ListLessons returns the syllabus for the caller's organization.
func (svc *RegistryService) ListLessons(ctx context.Context, claims auth.UserClaims) ([]gormModels.Lesson, error) {
	return svc.lessons.ListByOrg(ctx, claims.OrganizationID())
}

// GetLesson returns one lesson with its prerequisite chain.
func (svc *RegistryService) GetLesson(ctx context.Context, claims auth.UserClaims, lessonID string) (*gormModels.Lesson, error) {
	lesson, err := svc.lessons.GetByID(ctx, claims.OrganizationID(), lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, NewNotFoundError("Lesson not found")
	}
	return lesson, nil
}

// ListChargeables returns the billable line-item types.
func (svc *RegistryService) ListChargeables(ctx context.Context, claims auth.UserClaims) ([]gormModels.Chargeable, error) {
	return svc.chargeables.ListByOrg(ctx, claims.OrganizationID())
}
