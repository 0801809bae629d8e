package services

import (
	"aeroclub/flightdesk/internal/models/dtos"
)

// The error taxonomy handlers translate to HTTP statuses:
// validation -> 400, not found -> 404, forbidden -> 403, slot -> 409.

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NewNotFoundError(msg string) error { return &NotFoundError{Msg: msg} }

type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

func NewForbiddenError(msg string) error { return &ForbiddenError{Msg: msg} }

// SlotUnavailableError is the dedicated conflict condition: distinct from
// generic failures so the client can show the blocking bookings.
type SlotUnavailableError struct {
	Conflicts []dtos.ConflictingBooking
}

func (e *SlotUnavailableError) Error() string { return "requested slot is unavailable" }
