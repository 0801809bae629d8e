package constants

const (
	MsgSlotUnavailable     = "Requested slot is unavailable"
	MsgEndBeforeStart      = "End time must be after start time"
	MsgBookingNotFound     = "Booking not found"
	MsgCrossOrganization   = "Booking belongs to another organization"
	MsgSessionMissing      = "Unauthorized. Missing or expired session"
	MsgBriefingIncomplete  = "Briefing has not been completed"
	MsgAlreadyCheckedOut   = "Booking is already checked out"
	MsgMeterDeltaInvalid   = "Meter readings must advance past the aircraft tech log"
	MsgRateRequired        = "A billing rate must be selected before check-in"
	MsgDebriefNeedsGrades  = "At least one performance item must be graded"
	MsgDebriefNeedsOutcome = "A lesson outcome must be selected"
	MsgDragBelowThreshold  = "Drag did not move the booking a full hour"
	MsgLinkInvalid         = "Download link is invalid, expired or already used"
)
