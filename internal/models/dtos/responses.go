package dtos

import (
	"time"

	"aeroclub/flightdesk/internal/constants"
)

// APIResponse is the uniform JSON envelope for every endpoint.
type APIResponse struct {
	Status       string      `json:"status"`
	Message      string      `json:"message,omitempty"`
	ResponseTime string      `json:"response_time,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// ConflictingBooking is included in 409 payloads so the client can show the
// bookings that block the requested slot.
type ConflictingBooking struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	AircraftID   *string   `json:"aircraft_id,omitempty"`
	InstructorID *string   `json:"instructor_id,omitempty"`
}

// Resource is one row of the scheduler's vertical axis.
type Resource struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Kind constants.ResourceKind `json:"kind"`
}

// SchedulerBooking is the timeline projection of a booking: display names
// denormalized, status folded to the canonical set.
type SchedulerBooking struct {
	ID             string                  `json:"id"`
	UUID           string                  `json:"uuid"`
	StartTime      time.Time               `json:"start_time"`
	EndTime        time.Time               `json:"end_time"`
	Status         constants.BookingStatus `json:"status"`
	Type           string                  `json:"type"`
	AircraftID     *string                 `json:"aircraft_id,omitempty"`
	InstructorID   *string                 `json:"instructor_id,omitempty"`
	AircraftName   string                  `json:"aircraft_name,omitempty"`
	InstructorName string                  `json:"instructor_name,omitempty"`
	MemberName     string                  `json:"member_name,omitempty"`
	Left           float64                 `json:"left"`
	Width          float64                 `json:"width"`
}

type SchedulerDay struct {
	Date      string             `json:"date"`
	Resources []Resource         `json:"resources"`
	Bookings  []SchedulerBooking `json:"bookings"`
}

// StageView is how one workflow stage renders in the progress strip.
type StageView struct {
	Stage constants.Stage `json:"stage"`
	State string          `json:"state"` // complete | current | pending
}

// Facet wraps one independently-loaded slice of the booking view so the
// client can render partial data while slower joins resolve.
type Facet[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type BookingBasic struct {
	ID                string    `json:"id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Status            string    `json:"status"`
	Type              string    `json:"type"`
	AircraftReg       string    `json:"aircraft_registration,omitempty"`
	FlightTypeName    string    `json:"flight_type_name,omitempty"`
	BriefingCompleted *bool     `json:"briefing_completed"`
	DebriefCompleted  *bool     `json:"debrief_completed"`
}

type BookingPeople struct {
	MemberName     string `json:"member_name,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`
}

type BookingLesson struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingDetailsDTO struct {
	Route          string  `json:"route"`
	PassengerCount int     `json:"passenger_count"`
	ETA            *string `json:"eta,omitempty"`
	Comments       *string `json:"comments,omitempty"`
}

type BookingFlightTimesDTO struct {
	StartHobbs float64 `json:"start_hobbs"`
	EndHobbs   float64 `json:"end_hobbs"`
	StartTacho float64 `json:"start_tacho"`
	EndTacho   float64 `json:"end_tacho"`
	FlightTime float64 `json:"flight_time"`
}

// BookingView aggregates every facet of a booking for the detail screen.
type BookingView struct {
	Basic       Facet[BookingBasic]          `json:"basic"`
	People      Facet[BookingPeople]         `json:"people"`
	Lesson      Facet[BookingLesson]         `json:"lesson"`
	Details     Facet[BookingDetailsDTO]     `json:"details"`
	FlightTimes Facet[BookingFlightTimesDTO] `json:"flight_times"`
	Stages      []StageView                  `json:"stages"`
}

type PrerequisiteCheck struct {
	Status               string   `json:"status"`
	MissingPrerequisites []string `json:"missing_prerequisites,omitempty"`
}

type ProcedureResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type SignedLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
