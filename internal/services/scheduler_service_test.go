package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/db/repositories"
	"aeroclub/flightdesk/internal/models/dtos"
	"aeroclub/flightdesk/internal/models/entities"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
)

type fakeTimeline struct {
	rows      []entities.DayBookingRow
	listCalls int

	updatedID    string
	updatedStart time.Time
	updatedEnd   time.Time
	updateCalls  int
	updateErr    error
}

func (f *fakeTimeline) ListDay(_ context.Context, _ string, _, _ time.Time) ([]entities.DayBookingRow, error) {
	f.listCalls++
	return f.rows, nil
}

func (f *fakeTimeline) UpdateTimes(_ context.Context, _, bookingID string, start, end time.Time) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = bookingID
	f.updatedStart = start
	f.updatedEnd = end
	return nil
}

type fakeResources struct{}

func (fakeResources) ListAircraft(context.Context, string) ([]dtos.Resource, error) {
	return []dtos.Resource{{ID: "ac-1", Name: "ZK-TST", Kind: constants.ResourceAircraft}}, nil
}

func (fakeResources) ListInstructors(context.Context, string) ([]dtos.Resource, error) {
	return []dtos.Resource{{ID: "u-1", Name: "Alex Instructor", Kind: constants.ResourceInstructor}}, nil
}

type fakeConflicts struct {
	rows        []entities.BookingRow
	calls       int
	lastExclude *string
}

func (f *fakeConflicts) FindConflicts(_ context.Context, _ string, _ constants.ResourceKind, _ string,
	_, _ time.Time, excludeID *string) ([]entities.BookingRow, error) {
	f.calls++
	f.lastExclude = excludeID
	return f.rows, nil
}

type schedulerFixture struct {
	svc       *SchedulerService
	timeline  *fakeTimeline
	conflicts *fakeConflicts
	orgID     string
	bookingID string
	start     time.Time
	end       time.Time
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()

	db := setupTestDB(t)
	org := &gormModels.Organization{Name: "Test Aero Club", Code: "TAC"}
	require.NoError(t, db.Create(org).Error)

	aircraftID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	booking := &gormModels.Booking{
		OrganizationID: org.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         "confirmed",
		AircraftID:     &aircraftID,
	}
	require.NoError(t, db.Create(booking).Error)

	timeline := &fakeTimeline{}
	conflicts := &fakeConflicts{}
	availability := NewAvailabilityService(conflicts, nil)
	svc := NewSchedulerService(
		timeline,
		repositories.NewBookingGormRepository(db),
		fakeResources{},
		availability,
		nil,
		nil,
	)

	return &schedulerFixture{
		svc:       svc,
		timeline:  timeline,
		conflicts: conflicts,
		orgID:     org.ID,
		bookingID: booking.ID,
		start:     start,
		end:       end,
	}
}

func TestConfirmRescheduleMovesBooking(t *testing.T) {
	f := newSchedulerFixture(t)

	// 150px over 100px columns rounds to +2 hours
	day, err := f.svc.ConfirmReschedule(context.Background(), testClaims(f.orgID), dtos.RescheduleReq{
		BookingID:   f.bookingID,
		PixelDeltaX: 150,
		ColumnWidth: 100,
	})
	require.NoError(t, err)
	require.NotNil(t, day)

	assert.Equal(t, f.bookingID, f.timeline.updatedID)
	assert.Equal(t, f.start.Add(2*time.Hour), f.timeline.updatedStart)
	assert.Equal(t, f.end.Add(2*time.Hour), f.timeline.updatedEnd)
	assert.Equal(t, f.end.Sub(f.start), f.timeline.updatedEnd.Sub(f.timeline.updatedStart))
}

func TestConfirmRescheduleSubThresholdDrag(t *testing.T) {
	f := newSchedulerFixture(t)

	_, err := f.svc.ConfirmReschedule(context.Background(), testClaims(f.orgID), dtos.RescheduleReq{
		BookingID:   f.bookingID,
		PixelDeltaX: 40,
		ColumnWidth: 100,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, constants.MsgDragBelowThreshold, verr.Msg)
	assert.Zero(t, f.timeline.updateCalls)
	assert.Zero(t, f.conflicts.calls)
}

func TestConfirmRescheduleConflictKeepsOriginal(t *testing.T) {
	f := newSchedulerFixture(t)
	f.conflicts.rows = []entities.BookingRow{{
		ID:        "other-booking",
		StartTime: f.start.Add(2 * time.Hour),
		EndTime:   f.end.Add(2 * time.Hour),
		Status:    "confirmed",
	}}

	_, err := f.svc.ConfirmReschedule(context.Background(), testClaims(f.orgID), dtos.RescheduleReq{
		BookingID:   f.bookingID,
		PixelDeltaX: 200,
		ColumnWidth: 100,
	})

	var serr *SlotUnavailableError
	require.ErrorAs(t, err, &serr)
	require.Len(t, serr.Conflicts, 1)
	assert.Equal(t, "other-booking", serr.Conflicts[0].ID)
	assert.Zero(t, f.timeline.updateCalls, "conflicting reschedule must not write")
}

func TestConfirmRescheduleExclusionRace(t *testing.T) {
	f := newSchedulerFixture(t)
	f.timeline.updateErr = errors.New(`pq: conflicting key value violates exclusion constraint "bookings_aircraft_no_overlap"`)

	_, err := f.svc.ConfirmReschedule(context.Background(), testClaims(f.orgID), dtos.RescheduleReq{
		BookingID:   f.bookingID,
		PixelDeltaX: 200,
		ColumnWidth: 100,
	})

	var serr *SlotUnavailableError
	require.ErrorAs(t, err, &serr)
}

func TestProposeRescheduleIsPure(t *testing.T) {
	f := newSchedulerFixture(t)

	proposal, err := f.svc.ProposeReschedule(context.Background(), testClaims(f.orgID), dtos.RescheduleReq{
		BookingID:   f.bookingID,
		PixelDeltaX: -100,
		ColumnWidth: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, -1, proposal.HoursDelta)
	assert.Equal(t, f.start.Add(-time.Hour), proposal.NewStart)
	assert.Zero(t, f.timeline.updateCalls)
}

func TestDayViewProjection(t *testing.T) {
	f := newSchedulerFixture(t)
	reg := "ZK-TST"
	member := "Pat Member"
	f.timeline.rows = []entities.DayBookingRow{{
		ID:                   "b-1",
		StartTime:            time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		EndTime:              time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		Status:               "IN_PROGRESS",
		Type:                 "flight",
		AircraftRegistration: &reg,
		MemberName:           &member,
	}}

	day, err := f.svc.DayView(context.Background(), testClaims(f.orgID), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", day.Date)
	require.Len(t, day.Resources, 2)
	require.Len(t, day.Bookings, 1)

	b := day.Bookings[0]
	assert.Equal(t, constants.StatusFlying, b.Status, "legacy IN_PROGRESS folds to flying")
	assert.NotEmpty(t, b.UUID)
	assert.InDelta(t, 150.0, b.Left, 1e-9, "9:30 is 1.5 columns into the 8:00 window")
	assert.InDelta(t, 150.0, b.Width, 1e-9, "90 minutes spans 1.5 columns")
	assert.Equal(t, "ZK-TST", b.AircraftName)
	assert.Equal(t, "Pat Member", b.MemberName)
}

func TestDayViewUsesCache(t *testing.T) {
	f := newSchedulerFixture(t)
	cache := common.NewCacheService(60, 120)
	f.svc.cache = cache

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.DayView(context.Background(), testClaims(f.orgID), date)
	require.NoError(t, err)
	_, err = f.svc.DayView(context.Background(), testClaims(f.orgID), date)
	require.NoError(t, err)

	assert.Equal(t, 1, f.timeline.listCalls, "second read must come from cache")
}
