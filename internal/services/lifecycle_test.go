package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aeroclub/flightdesk/internal/constants"
)

func TestDeriveLifecycleFoldsLegacyStatuses(t *testing.T) {
	cases := []struct {
		raw        string
		want       constants.BookingStatus
		recognized bool
	}{
		{"confirmed", constants.StatusConfirmed, true},
		{"CONFIRMED", constants.StatusConfirmed, true},
		{"IN_PROGRESS", constants.StatusFlying, true},
		{"Flying", constants.StatusFlying, true},
		{"COMPLETED", constants.StatusComplete, true},
		{"complete", constants.StatusComplete, true},
		{"unconfirmed", constants.StatusPending, true},
		{"canceled", constants.StatusCancelled, true},
		{"garbage", constants.StatusPending, false},
		{"", constants.StatusPending, false},
	}

	for _, tc := range cases {
		lc, recognized := DeriveLifecycle(tc.raw, nil, nil)
		assert.Equal(t, tc.want, lc.Status, "raw=%q", tc.raw)
		assert.Equal(t, tc.recognized, recognized, "raw=%q", tc.raw)
	}
}

func TestLifecycleTransitionGuards(t *testing.T) {
	pending := Lifecycle{Status: constants.StatusPending}
	confirmed := Lifecycle{Status: constants.StatusConfirmed}
	flying := Lifecycle{Status: constants.StatusFlying}
	complete := Lifecycle{Status: constants.StatusComplete}
	cancelled := Lifecycle{Status: constants.StatusCancelled}

	assert.True(t, pending.CanCheckout())
	assert.True(t, confirmed.CanCheckout())
	assert.False(t, flying.CanCheckout())
	assert.False(t, complete.CanCheckout())
	assert.False(t, cancelled.CanCheckout())

	assert.True(t, flying.CanCheckIn())
	assert.False(t, confirmed.CanCheckIn())
	assert.False(t, complete.CanCheckIn())

	assert.True(t, flying.CanDebrief())
	assert.True(t, complete.CanDebrief())
	assert.False(t, cancelled.CanDebrief())
}

func TestEntryStage(t *testing.T) {
	assert.Equal(t, constants.StageBriefing, EntryStage(true), "lessons start with a briefing")
	assert.Equal(t, constants.StageCheckout, EntryStage(false), "rentals go straight to checkout")
}

func TestBuildStageViewsMidFlight(t *testing.T) {
	lc := Lifecycle{Status: constants.StatusFlying, BriefingDone: true}

	views := lc.BuildStageViews(constants.StageFlying)

	byStage := map[constants.Stage]string{}
	for _, v := range views {
		byStage[v.Stage] = v.State
	}
	assert.Equal(t, "complete", byStage[constants.StageBriefing])
	assert.Equal(t, "complete", byStage[constants.StageCheckout], "flying implies checkout happened")
	assert.Equal(t, "current", byStage[constants.StageFlying])
	assert.Equal(t, "pending", byStage[constants.StageDebrief])
	assert.Equal(t, "pending", byStage[constants.StageCheckin])
}
