package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/models/dtos"
)

// CreateBookingHandler handles POST /api/v1/bookings
func (h *Handlers) CreateBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.CreateBookingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		booking, err := h.deps.Services.Bookings.Create(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Booking created", booking, http.StatusCreated)
	}
}

// ListBookingsHandler handles GET /api/v1/bookings?date=YYYY-MM-DD
func (h *Handlers) ListBookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		bookings, err := h.deps.Services.Bookings.List(r.Context(), claims, r.URL.Query().Get("date"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", bookings)
	}
}

// GetBookingHandler handles GET /api/v1/bookings/{id}: the aggregated
// facet view for the booking detail screen.
func (h *Handlers) GetBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		bookingID := chi.URLParam(r, "id")

		view, err := h.deps.Services.BookingView.Load(r.Context(), claims, bookingID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", view)
	}
}

// UpdateBookingHandler handles PUT /api/v1/bookings/{id}
func (h *Handlers) UpdateBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		bookingID := chi.URLParam(r, "id")

		var req dtos.UpdateBookingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		booking, err := h.deps.Services.Bookings.Update(r.Context(), claims, bookingID, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Booking updated", booking)
	}
}

// CheckPrerequisitesHandler handles
// GET /api/v1/bookings/check-prerequisites?student_id=&lesson_id=
func (h *Handlers) CheckPrerequisitesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		studentID := r.URL.Query().Get("student_id")
		lessonID := r.URL.Query().Get("lesson_id")
		if studentID == "" || lessonID == "" {
			common.RespondError(w, initTime, nil, "student_id and lesson_id are required", http.StatusBadRequest)
			return
		}

		check, err := h.deps.Services.Bookings.CheckPrerequisites(r.Context(), claims, studentID, lessonID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", check)
	}
}
