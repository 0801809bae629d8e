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

// ListAircraftHandler handles GET /api/v1/aircraft
func (h *Handlers) ListAircraftHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		fleet, err := h.deps.Services.Registry.ListFleet(r.Context(), claims)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", fleet)
	}
}

// GetAircraftHandler handles GET /api/v1/aircraft/{id}
func (h *Handlers) GetAircraftHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		aircraftID := chi.URLParam(r, "id")

		ac, err := h.deps.Services.Registry.GetAircraft(r.Context(), claims, aircraftID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", ac)
	}
}

// ReportDefectHandler handles POST /api/v1/aircraft/{id}/defects
func (h *Handlers) ReportDefectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		aircraftID := chi.URLParam(r, "id")

		var req dtos.DefectReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		defect, err := h.deps.Services.Registry.ReportDefect(r.Context(), claims, aircraftID, req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Defect reported", defect, http.StatusCreated)
	}
}

// ListDefectsHandler handles GET /api/v1/aircraft/{id}/defects
func (h *Handlers) ListDefectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		aircraftID := chi.URLParam(r, "id")

		defects, err := h.deps.Services.Registry.ListDefects(r.Context(), claims, aircraftID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", defects)
	}
}

// ListMembersHandler handles GET /api/v1/members
func (h *Handlers) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		members, err := h.deps.Services.Registry.ListMembers(r.Context(), claims)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", members)
	}
}

// ListLessonsHandler handles GET /api/v1/lessons
func (h *Handlers) ListLessonsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		lessons, err := h.deps.Services.Registry.ListLessons(r.Context(), claims)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", lessons)
	}
}

// GetLessonHandler handles GET /api/v1/lessons/{id}
func (h *Handlers) GetLessonHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		lessonID := chi.URLParam(r, "id")

		lesson, err := h.deps.Services.Registry.GetLesson(r.Context(), claims, lessonID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", lesson)
	}
}

// ListChargeablesHandler handles GET /api/v1/chargeables
func (h *Handlers) ListChargeablesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		chargeables, err := h.deps.Services.Registry.ListChargeables(r.Context(), claims)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "", chargeables)
	}
}
