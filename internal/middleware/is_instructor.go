package middleware

import (
	"net/http"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
)

// IsInstructorMiddleware gates the workflow transitions only instructors and
// staff may run (checkout, check-in, debrief).
func IsInstructorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil || !claims.HasRole(constants.RoleInstructor, constants.RoleAdmin, constants.RoleOwner) {
				common.RespondPermissionDenied(w, "instructor")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
