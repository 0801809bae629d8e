package common

import (
	"encoding/json"
	"net/http"
	"time"

	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/logging"
	"aeroclub/flightdesk/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError sends a standardized JSON error response.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	msg := message
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      msg,
		ResponseTime: GetResponseTime(initTime),
	}

	writeJSON(w, code, response)
}

// RespondConflict is RespondError with the conflicting bookings attached so
// the client can show what blocks the slot.
func RespondConflict(w http.ResponseWriter, initTime time.Time, message string, conflicts []dtos.ConflictingBooking) {
	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         map[string]any{"conflicting_bookings": conflicts},
	}

	writeJSON(w, http.StatusConflict, response)
}

// RespondPermissionDenied sends a 403 naming the role the route requires.
func RespondPermissionDenied(w http.ResponseWriter, requiredRole string) {
	response := dtos.APIResponse{
		Status:  string(constants.APIStatusError),
		Message: "Permission denied. Requires role: " + requiredRole,
	}

	writeJSON(w, http.StatusForbidden, response)
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
