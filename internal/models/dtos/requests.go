package dtos

// CreateBookingReq carries date and times as separate fields; the server
// re-derives the start/end timestamps and validates the interval.
type CreateBookingReq struct {
	Date         string  `json:"date"`       // YYYY-MM-DD
	StartTime    string  `json:"start_time"` // HH:MM, club-local
	EndTime      string  `json:"end_time"`   // HH:MM
	UserID       *string `json:"user_id"`
	AircraftID   *string `json:"aircraft_id"`
	InstructorID *string `json:"instructor_id"`
	FlightTypeID *string `json:"flight_type_id"`
	LessonID     *string `json:"lesson_id"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
}

// UpdateBookingReq patches a booking. Nil fields are left untouched.
type UpdateBookingReq struct {
	Date         *string `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	AircraftID   *string `json:"aircraft_id"`
	InstructorID *string `json:"instructor_id"`
	Status       *string `json:"status"`
}

type CheckoutReq struct {
	Route          string  `json:"route"`
	PassengerCount int     `json:"passenger_count"`
	ETA            *string `json:"eta"`
	Comments       *string `json:"comments"`
}

type CheckinReq struct {
	EndHobbs float64 `json:"end_hobbs"`
	EndTacho float64 `json:"end_tacho"`
	RateID   string  `json:"rate_id"`
}

type DebriefItemReq struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
}

type DebriefReq struct {
	Outcome  string           `json:"outcome"`
	Comments *string          `json:"comments"`
	Items    []DebriefItemReq `json:"items"`
}

// RescheduleReq confirms a drag proposal. The server recomputes the hour
// delta from the pixel movement and applies it to the booking's persisted
// times, never to what the client happened to have rendered.
type RescheduleReq struct {
	BookingID   string  `json:"booking_id"`
	PixelDeltaX float64 `json:"pixel_delta_x"`
	ColumnWidth float64 `json:"column_width"`
}

type DefectReq struct {
	Description string `json:"description"`
}

// CreateInvoiceReq is handed through to the create_invoice_with_items
// stored procedure; the numeric work happens store-side.
type CreateInvoiceReq struct {
	Invoice map[string]interface{}   `json:"invoice"`
	Items   []map[string]interface{} `json:"items"`
}

type ProcessPaymentReq struct {
	Payment map[string]interface{} `json:"payment"`
}
