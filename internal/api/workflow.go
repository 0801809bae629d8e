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

// CompleteBriefingHandler handles POST /api/v1/bookings/{id}/briefing/complete
func (h *Handlers) CompleteBriefingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		bookingID := chi.URLParam(r, "id")

		if err := h.deps.Services.Workflow.CompleteBriefing(r.Context(), claims, bookingID); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Briefing completed", nil)
	}
}

// CheckoutHandler handles POST /api/v1/bookings/{id}/checkout
func (h *Handlers) CheckoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		bookingID := chi.URLParam(r, "id")

		var req dtos.CheckoutReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Workflow.Checkout(r.Context(), claims, bookingID, req); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Booking checked out", nil)
	}
}

// CheckinHandler handles POST /api/v1/bookings/{id}/checkin
func (h *Handlers) CheckinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		bookingID := chi.URLParam(r, "id")

		var req dtos.CheckinReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		ft, err := h.deps.Services.Workflow.CheckIn(r.Context(), claims, bookingID, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flight checked in", ft)
	}
}

// CompleteDebriefHandler handles POST /api/v1/bookings/{id}/debrief
func (h *Handlers) CompleteDebriefHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		bookingID := chi.URLParam(r, "id")

		var req dtos.DebriefReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Workflow.CompleteDebrief(r.Context(), claims, bookingID, req); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Debrief recorded", nil)
	}
}
