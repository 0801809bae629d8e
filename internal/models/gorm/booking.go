package gorm

import "time"

type Booking struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string    `gorm:"column:organization_id;type:uuid;index"`
	StartTime      time.Time `gorm:"column:start_time"`
	EndTime        time.Time `gorm:"column:end_time"`
	Type           string    `gorm:"column:type;default:flight"`
	Status         string    `gorm:"column:status;default:pending"`

	AircraftID   *string `gorm:"column:aircraft_id;type:uuid"`
	InstructorID *string `gorm:"column:instructor_id;type:uuid"`
	UserID       *string `gorm:"column:user_id;type:uuid"`

	LessonID     *string `gorm:"column:lesson_id;type:uuid"`
	FlightTypeID *string `gorm:"column:flight_type_id;type:uuid"`

	BriefingCompleted *bool `gorm:"column:briefing_completed"`
	DebriefCompleted  *bool `gorm:"column:debrief_completed"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Aircraft    *Aircraft           `gorm:"foreignKey:AircraftID"`
	Instructor  *User               `gorm:"foreignKey:InstructorID"`
	User        *User               `gorm:"foreignKey:UserID"`
	Lesson      *Lesson             `gorm:"foreignKey:LessonID"`
	Details     *BookingDetails     `gorm:"foreignKey:BookingID"`
	FlightTimes *BookingFlightTimes `gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

// BookingDetails is created at checkout time, 1:1 with its booking.
type BookingDetails struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	BookingID      string    `gorm:"column:booking_id;type:uuid;uniqueIndex"`
	Route          string    `gorm:"column:route"`
	PassengerCount int       `gorm:"column:passenger_count"`
	ETA            *string   `gorm:"column:eta"`
	Comments       *string   `gorm:"column:comments"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (BookingDetails) TableName() string {
	return "booking_details"
}

// BookingFlightTimes is created at check-in time, 1:1 with its booking.
// FlightTime is always computed from the meter deltas, never entered.
type BookingFlightTimes struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid"`
	BookingID  string    `gorm:"column:booking_id;type:uuid;uniqueIndex"`
	StartHobbs float64   `gorm:"column:start_hobbs"`
	EndHobbs   float64   `gorm:"column:end_hobbs"`
	StartTacho float64   `gorm:"column:start_tacho"`
	EndTacho   float64   `gorm:"column:end_tacho"`
	FlightTime float64   `gorm:"column:flight_time"`
	RateID     *string   `gorm:"column:rate_id;type:uuid"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (BookingFlightTimes) TableName() string {
	return "booking_flight_times"
}
