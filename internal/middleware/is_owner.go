package middleware

import (
	"net/http"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
)

// IsOwnerMiddleware gates organization-level settings.
func IsOwnerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil || !claims.HasRole(constants.RoleOwner) {
				common.RespondPermissionDenied(w, "owner")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
