package middleware

import (
	"net/http"
	"time"

	"aeroclub/flightdesk/internal/auth"
	"aeroclub/flightdesk/internal/common"
	"aeroclub/flightdesk/internal/constants"
)

// AuthMiddleware resolves the caller's session against Redis and stores the
// resulting claims in the request context. The identity provider owns
// sign-in; by the time a request lands here the session either exists or the
// caller gets a 401.
func AuthMiddleware(sessions *common.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			sessionID := r.Header.Get("X-Session-Id")
			if sessionID == "" {
				if cookie, err := r.Cookie("session_id"); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				common.RespondError(w, initTime, nil, constants.MsgSessionMissing, http.StatusUnauthorized)
				return
			}

			session, err := sessions.GetSession(r.Context(), sessionID)
			if err != nil {
				common.RespondError(w, initTime, nil, constants.MsgSessionMissing, http.StatusUnauthorized)
				return
			}

			claims := &auth.SessionClaims{
				UserUUID:  session.UserID,
				OrgUUID:   session.OrganizationID,
				RoleValue: session.Role,
				Name:      session.DisplayName,
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
