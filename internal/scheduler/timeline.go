// Package scheduler holds the pure timeline arithmetic for the booking
// grid: wall-clock to pixel conversion and drag-to-reschedule
// interpretation. Nothing in here touches the database.
package scheduler

import (
	"math"
	"time"
)

const (
	// Visible day window of the timeline, club-local hours.
	DayStartHour = 8
	DayEndHour   = 19

	// DefaultColumnWidth is the pixel width of one hourly column when the
	// client does not report its own.
	DefaultColumnWidth = 100.0
)

// FractionalHour converts a timestamp to hours-plus-minutes as a float,
// e.g. 09:30 -> 9.5.
func FractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0
}

// SlotLeft is the horizontal offset in pixels of a booking's start within
// the day window.
func SlotLeft(start time.Time, columnWidth float64) float64 {
	return (FractionalHour(start) - DayStartHour) * columnWidth
}

// SlotWidth is the pixel width of a booking on the timeline.
func SlotWidth(start, end time.Time, columnWidth float64) float64 {
	return (FractionalHour(end) - FractionalHour(start)) * columnWidth
}

// HoursDelta quantizes a horizontal drag to whole hours. Sub-hour precision
// is discarded on purpose: drag rescheduling works in one-hour steps.
func HoursDelta(pixelDeltaX, columnWidth float64) int {
	if columnWidth <= 0 {
		return 0
	}
	return int(math.Round(pixelDeltaX / columnWidth))
}

// Proposal is a staged reschedule candidate. It is not persisted until the
// user confirms and the slot re-validates.
type Proposal struct {
	HoursDelta int
	NewStart   time.Time
	NewEnd     time.Time
}

// ProposeDrag interprets a drag gesture against a booking's interval. ok is
// false when the drag rounds to zero hours; such drags are treated as
// accidental and must not stage a proposal. Duration is preserved exactly.
func ProposeDrag(start, end time.Time, pixelDeltaX, columnWidth float64) (Proposal, bool) {
	delta := HoursDelta(pixelDeltaX, columnWidth)
	if delta == 0 {
		return Proposal{}, false
	}

	shift := time.Duration(delta) * time.Hour
	return Proposal{
		HoursDelta: delta,
		NewStart:   start.Add(shift),
		NewEnd:     end.Add(shift),
	}, true
}
