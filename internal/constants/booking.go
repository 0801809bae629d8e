package constants

import "strings"

// BookingStatus is the canonical set of booking statuses. Persisted rows
// carry legacy spellings and mixed case; NormalizeStatus folds them.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusFlying    BookingStatus = "flying"
	StatusComplete  BookingStatus = "complete"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) String() string { return string(s) }

// BookingType classifies what a scheduler slot is used for.
type BookingType string

const (
	TypeFlight      BookingType = "flight"
	TypeGroundwork  BookingType = "groundwork"
	TypeMaintenance BookingType = "maintenance"
	TypeTimesheet   BookingType = "timesheet"
)

// Stage is a step of the pre/post-flight workflow. Order matters: it is the
// order the stages are walked in the UI.
type Stage string

const (
	StageBriefing Stage = "briefing"
	StageCheckout Stage = "checkout"
	StageFlying   Stage = "flying"
	StageDebrief  Stage = "debrief"
	StageCheckin  Stage = "checkin"
)

// WorkflowStages lists the stages in walk order.
var WorkflowStages = []Stage{StageBriefing, StageCheckout, StageFlying, StageDebrief, StageCheckin}

// DebriefOutcome is the overall result of a post-flight debrief.
type DebriefOutcome string

const (
	OutcomePass       DebriefOutcome = "PASS"
	OutcomeFail       DebriefOutcome = "FAIL"
	OutcomeIncomplete DebriefOutcome = "INCOMPLETE"
)

// ValidOutcome reports whether s is one of the accepted debrief outcomes.
func ValidOutcome(s string) bool {
	switch DebriefOutcome(s) {
	case OutcomePass, OutcomeFail, OutcomeIncomplete:
		return true
	}
	return false
}

var statusSynonyms = map[string]BookingStatus{
	"confirmed":   StatusConfirmed,
	"pending":     StatusPending,
	"unconfirmed": StatusPending,
	"flying":      StatusFlying,
	"in_progress": StatusFlying,
	"inprogress":  StatusFlying,
	"complete":    StatusComplete,
	"completed":   StatusComplete,
	"cancelled":   StatusCancelled,
	"canceled":    StatusCancelled,
}

// NormalizeStatus folds a raw persisted status string to the canonical set.
// Unrecognized values fall back to pending; ok is false on that path so the
// caller can log/count the fallback.
func NormalizeStatus(raw string) (BookingStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, found := statusSynonyms[key]; found {
		return s, true
	}
	return StatusPending, false
}
