package entities

import "time"

// BookingRow is the flat sqlx projection used by the overlap query.
type BookingRow struct {
	ID           string    `db:"id"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	Status       string    `db:"status"`
	AircraftID   *string   `db:"aircraft_id"`
	InstructorID *string   `db:"instructor_id"`
	UserID       *string   `db:"user_id"`
}

// DayBookingRow carries the scheduler day query with its joined display names.
type DayBookingRow struct {
	ID                   string    `db:"id"`
	StartTime            time.Time `db:"start_time"`
	EndTime              time.Time `db:"end_time"`
	Status               string    `db:"status"`
	Type                 string    `db:"type"`
	AircraftID           *string   `db:"aircraft_id"`
	InstructorID         *string   `db:"instructor_id"`
	UserID               *string   `db:"user_id"`
	BriefingCompleted    *bool     `db:"briefing_completed"`
	DebriefCompleted     *bool     `db:"debrief_completed"`
	AircraftRegistration *string   `db:"aircraft_registration"`
	InstructorName       *string   `db:"instructor_name"`
	MemberName           *string   `db:"member_name"`
}
