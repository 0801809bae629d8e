package services

import (
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/models/dtos"
)

// Lifecycle is the tagged in-memory form of a booking's workflow position.
// The store keeps three independent fields (status, briefing_completed,
// debrief_completed); deriving this once at the boundary keeps illegal
// combinations out of the transition logic.
type Lifecycle struct {
	Status       constants.BookingStatus
	BriefingDone bool
	DebriefDone  bool
}

// DeriveLifecycle folds the flat persisted representation into a Lifecycle.
// recognized is false when the raw status needed the pending fallback.
func DeriveLifecycle(rawStatus string, briefingCompleted, debriefCompleted *bool) (Lifecycle, bool) {
	status, recognized := constants.NormalizeStatus(rawStatus)
	return Lifecycle{
		Status:       status,
		BriefingDone: briefingCompleted != nil && *briefingCompleted,
		DebriefDone:  debriefCompleted != nil && *debriefCompleted,
	}, recognized
}

// CanCheckout: only a booked (pending/confirmed) flight can go flying.
func (l Lifecycle) CanCheckout() bool {
	return l.Status == constants.StatusConfirmed || l.Status == constants.StatusPending
}

// CanCheckIn: only an airborne booking can be checked in.
func (l Lifecycle) CanCheckIn() bool {
	return l.Status == constants.StatusFlying
}

// CanDebrief: debrief is independent of the primary status, but a cancelled
// booking has nothing to assess.
func (l Lifecycle) CanDebrief() bool {
	return l.Status != constants.StatusCancelled
}

// EntryStage is where a new booking enters the workflow: instructional
// lessons start at briefing, pure rentals skip straight to checkout.
func EntryStage(hasLesson bool) constants.Stage {
	if hasLesson {
		return constants.StageBriefing
	}
	return constants.StageCheckout
}

// CurrentStage is the stage the workflow is sitting at right now, used when
// no caller screen is supplied.
func (l Lifecycle) CurrentStage(hasLesson bool) constants.Stage {
	switch l.Status {
	case constants.StatusFlying:
		return constants.StageFlying
	case constants.StatusComplete:
		if !l.DebriefDone {
			return constants.StageDebrief
		}
		return constants.StageCheckin
	}
	if hasLesson && !l.BriefingDone {
		return constants.StageBriefing
	}
	return constants.StageCheckout
}

// stageCompleted: a stage is done when its own completion signal fired, or
// when the booking as a whole is complete.
func (l Lifecycle) stageCompleted(stage constants.Stage) bool {
	if l.Status == constants.StatusComplete {
		return true
	}
	switch stage {
	case constants.StageBriefing:
		return l.BriefingDone
	case constants.StageDebrief:
		return l.DebriefDone
	case constants.StageCheckout:
		return l.Status == constants.StatusFlying
	case constants.StageFlying, constants.StageCheckin:
		// both end only when the booking completes
		return false
	}
	return false
}

// BuildStageViews renders the workflow progress strip: each stage is
// complete, current, or pending. current is the caller-supplied stage the
// user is looking at; it only shows as current while the booking is not yet
// complete.
func (l Lifecycle) BuildStageViews(current constants.Stage) []dtos.StageView {
	views := make([]dtos.StageView, 0, len(constants.WorkflowStages))
	for _, stage := range constants.WorkflowStages {
		state := "pending"
		switch {
		case l.stageCompleted(stage):
			state = "complete"
		case stage == current && l.Status != constants.StatusComplete:
			state = "current"
		}
		views = append(views, dtos.StageView{Stage: stage, State: state})
	}
	return views
}
