package api

import (
	"errors"
	"net/http"
	"time"

	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/logging"
	"aeroclub/flightdesk/internal/services"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500 with the detail kept out of the response.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		common.RespondError(w, initTime, verr, "", http.StatusBadRequest)
		return
	}

	var nerr *services.NotFoundError
	if errors.As(err, &nerr) {
		common.RespondError(w, initTime, nerr, "", http.StatusNotFound)
		return
	}

	var ferr *services.ForbiddenError
	if errors.As(err, &ferr) {
		common.RespondError(w, initTime, ferr, "", http.StatusForbidden)
		return
	}

	var serr *services.SlotUnavailableError
	if errors.As(err, &serr) {
		common.RespondConflict(w, initTime, constants.MsgSlotUnavailable, serr.Conflicts)
		return
	}

	logging.Error("Unhandled service error", "error", err.Error())
	common.RespondError(w, initTime, nil, "Internal server error", http.StatusInternalServerError)
}
