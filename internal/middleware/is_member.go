package middleware

import (
	"net/http"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
)

// IsMemberMiddleware gates routes that need any club membership at all.
func IsMemberMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil || !claims.HasRole(constants.RoleMember, constants.RoleInstructor, constants.RoleAdmin, constants.RoleOwner) {
				common.RespondPermissionDenied(w, "member")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
