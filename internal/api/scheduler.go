package api

import (
	"encoding/json"
	"net/http"
	"time"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/models/dtos"
)

// SchedulerDayHandler handles GET /api/v1/scheduler/day?date=YYYY-MM-DD
func (h *Handlers) SchedulerDayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		date := time.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				common.RespondError(w, initTime, err, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = parsed
		}

		day, err := h.deps.Services.Scheduler.DayView(r.Context(), claims, date)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", day)
	}
}

// RescheduleHandler handles POST /api/v1/scheduler/reschedule: confirm a
// drag and return the refreshed day.
func (h *Handlers) RescheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.RescheduleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.BookingID == "" {
			common.RespondError(w, initTime, nil, "booking_id is required", http.StatusBadRequest)
			return
		}

		day, err := h.deps.Services.Scheduler.ConfirmReschedule(r.Context(), claims, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Booking rescheduled", day)
	}
}
