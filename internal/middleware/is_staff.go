package middleware

import (
	"net/http"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
)

// IsStaffMiddleware gates billing and administration routes.
func IsStaffMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil || !claims.HasRole(constants.RoleAdmin, constants.RoleOwner) {
				common.RespondPermissionDenied(w, "staff (admin)")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
