package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/models/dtos"
	"aeroclub/flightdesk/internal/models/entities"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
)

type bookingFixture struct {
	db        *gorm.DB
	svc       *BookingService
	conflicts *fakeConflicts
	orgID     string
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	db := setupTestDB(t)
	org := &gormModels.Organization{Name: "Test Aero Club", Code: "TAC"}
	require.NoError(t, db.Create(org).Error)

	conflicts := &fakeConflicts{}
	svc := NewBookingService(
		repositories.NewBookingGormRepository(db),
		repositories.NewLessonRepository(db),
		NewAvailabilityService(conflicts, nil),
		time.UTC,
		nil,
	)

	return &bookingFixture{db: db, svc: svc, conflicts: conflicts, orgID: org.ID}
}

func TestCreateBookingDerivesTimes(t *testing.T) {
	f := newBookingFixture(t)
	aircraftID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

	booking, err := f.svc.Create(context.Background(), testClaims(f.orgID), dtos.CreateBookingReq{
		Date:       "2026-03-14",
		StartTime:  "10:00",
		EndTime:    "11:30",
		AircraftID: &aircraftID,
		Status:     "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), booking.StartTime)
	assert.Equal(t, time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC), booking.EndTime)
	assert.Equal(t, "confirmed", booking.Status)
	assert.Equal(t, f.orgID, booking.OrganizationID)
	require.NotNil(t, booking.UserID, "defaults to the caller")
	assert.Equal(t, 1, f.conflicts.calls)
}

func TestCreateBookingRejectsInvertedInterval(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), testClaims(f.orgID), dtos.CreateBookingReq{
		Date:      "2026-03-14",
		StartTime: "11:00",
		EndTime:   "11:00",
		Status:    "confirmed",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, constants.MsgEndBeforeStart, verr.Msg)
}

func TestCreateBookingConflictPersistsNothing(t *testing.T) {
	f := newBookingFixture(t)
	aircraftID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	f.conflicts.rows = []entities.BookingRow{{ID: "blocker", Status: "confirmed"}}

	_, err := f.svc.Create(context.Background(), testClaims(f.orgID), dtos.CreateBookingReq{
		Date:       "2026-03-14",
		StartTime:  "10:00",
		EndTime:    "11:00",
		AircraftID: &aircraftID,
		Status:     "confirmed",
	})

	var serr *SlotUnavailableError
	require.ErrorAs(t, err, &serr)

	var count int64
	require.NoError(t, f.db.Model(&gormModels.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateBookingPendingSkipsOverlapCheck(t *testing.T) {
	f := newBookingFixture(t)
	aircraftID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

	// legacy spelling normalizes to pending, which holds no resources
	booking, err := f.svc.Create(context.Background(), testClaims(f.orgID), dtos.CreateBookingReq{
		Date:       "2026-03-14",
		StartTime:  "10:00",
		EndTime:    "11:00",
		AircraftID: &aircraftID,
		Status:     "unconfirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", booking.Status)
	assert.Zero(t, f.conflicts.calls)
}

func TestListBookingsFiltersByDay(t *testing.T) {
	f := newBookingFixture(t)

	for _, day := range []string{"2026-03-14", "2026-03-15"} {
		_, err := f.svc.Create(context.Background(), testClaims(f.orgID), dtos.CreateBookingReq{
			Date:      day,
			StartTime: "10:00",
			EndTime:   "11:00",
			Status:    "pending",
		})
		require.NoError(t, err)
	}

	all, err := f.svc.List(context.Background(), testClaims(f.orgID), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day, err := f.svc.List(context.Background(), testClaims(f.orgID), "2026-03-15")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), day[0].StartTime)

	_, err = f.svc.List(context.Background(), testClaims(f.orgID), "not-a-date")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateBookingExcludesItself(t *testing.T) {
	f := newBookingFixture(t)
	aircraftID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

	booking, err := f.svc.Create(context.Background(), testClaims(f.orgID), dtos.CreateBookingReq{
		Date:       "2026-03-14",
		StartTime:  "10:00",
		EndTime:    "11:00",
		AircraftID: &aircraftID,
		Status:     "confirmed",
	})
	require.NoError(t, err)

	newEnd := "12:00"
	updated, err := f.svc.Update(context.Background(), testClaims(f.orgID), booking.ID, dtos.UpdateBookingReq{
		EndTime: &newEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), updated.EndTime)
	require.NotNil(t, f.conflicts.lastExclude, "the booking must not conflict with itself")
	assert.Equal(t, booking.ID, *f.conflicts.lastExclude)
}

func TestUpdateBookingCrossOrgForbidden(t *testing.T) {
	f := newBookingFixture(t)
	otherOrg := &gormModels.Organization{Name: "Other Club", Code: "OTH"}
	require.NoError(t, f.db.Create(otherOrg).Error)

	booking, err := f.svc.Create(context.Background(), testClaims(f.orgID), dtos.CreateBookingReq{
		Date:      "2026-03-14",
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    "pending",
	})
	require.NoError(t, err)

	status := "cancelled"
	_, err = f.svc.Update(context.Background(), testClaims(otherOrg.ID), booking.ID, dtos.UpdateBookingReq{
		Status: &status,
	})

	var ferr *ForbiddenError
	require.ErrorAs(t, err, &ferr)
}

func TestCheckPrerequisites(t *testing.T) {
	f := newBookingFixture(t)
	student := "22222222-2222-2222-2222-222222222222"

	basics := &gormModels.Lesson{OrganizationID: f.orgID, Name: "Effects of Controls"}
	require.NoError(t, f.db.Create(basics).Error)
	circuits := &gormModels.Lesson{OrganizationID: f.orgID, Name: "Circuits"}
	require.NoError(t, f.db.Create(circuits).Error)
	require.NoError(t, f.db.Create(&gormModels.LessonPrerequisite{
		LessonID:             circuits.ID,
		PrerequisiteLessonID: basics.ID,
	}).Error)

	check, err := f.svc.CheckPrerequisites(context.Background(), testClaims(f.orgID), student, circuits.ID)
	require.NoError(t, err)
	assert.Equal(t, "missing", check.Status)
	assert.Equal(t, []string{"Effects of Controls"}, check.MissingPrerequisites)

	// a PASS debrief for the prerequisite clears it
	require.NoError(t, f.db.Create(&gormModels.Debrief{
		OrganizationID: f.orgID,
		BookingID:      "44444444-4444-4444-4444-444444444444",
		LessonID:       &basics.ID,
		StudentID:      &student,
		Outcome:        "PASS",
	}).Error)

	check, err = f.svc.CheckPrerequisites(context.Background(), testClaims(f.orgID), student, circuits.ID)
	require.NoError(t, err)
	assert.Equal(t, "ok", check.Status)
	assert.Empty(t, check.MissingPrerequisites)
}
