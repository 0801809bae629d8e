package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/models/entities"
)

func TestCheckSlotRejectsMalformedInterval(t *testing.T) {
	conflicts := &fakeConflicts{}
	svc := NewAvailabilityService(conflicts, nil)
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	err := svc.CheckSlot(context.Background(), "org-1", constants.ResourceAircraft, "ac-1", at, at, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, constants.MsgEndBeforeStart, verr.Msg)
	assert.Zero(t, conflicts.calls, "a malformed interval is not a conflict question")
}

func TestCheckSlotReportsBlockers(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	conflicts := &fakeConflicts{rows: []entities.BookingRow{
		{ID: "b-1", StartTime: start, EndTime: start.Add(time.Hour), Status: "confirmed"},
		{ID: "b-2", StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), Status: "confirmed"},
	}}
	svc := NewAvailabilityService(conflicts, nil)

	err := svc.CheckSlot(context.Background(), "org-1", constants.ResourceAircraft, "ac-1",
		start.Add(30*time.Minute), start.Add(90*time.Minute), nil)

	var serr *SlotUnavailableError
	require.ErrorAs(t, err, &serr)
	require.Len(t, serr.Conflicts, 2)
	assert.Equal(t, "b-1", serr.Conflicts[0].ID)
}

func TestCheckSlotFreePasses(t *testing.T) {
	svc := NewAvailabilityService(&fakeConflicts{}, nil)
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	err := svc.CheckSlot(context.Background(), "org-1", constants.ResourceInstructor, "u-1",
		start, start.Add(time.Hour), nil)

	assert.NoError(t, err)
}

func TestCheckBookingSlotChecksBothResources(t *testing.T) {
	conflicts := &fakeConflicts{}
	svc := NewAvailabilityService(conflicts, nil)
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	aircraftID := "ac-1"
	instructorID := "u-1"
	err := svc.CheckBookingSlot(context.Background(), "org-1", &aircraftID, &instructorID,
		start, start.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, conflicts.calls)
}

func TestCheckBookingSlotSkipsMissingResources(t *testing.T) {
	conflicts := &fakeConflicts{}
	svc := NewAvailabilityService(conflicts, nil)
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	empty := ""
	err := svc.CheckBookingSlot(context.Background(), "org-1", nil, &empty,
		start, start.Add(time.Hour), nil)

	require.NoError(t, err)
	assert.Zero(t, conflicts.calls)
}
