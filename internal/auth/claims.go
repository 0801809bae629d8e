package auth

import "aeroclub/flightdesk/internal/constants"

// UserClaims is the request-scoped identity every core operation receives.
// Built once by the auth middleware, threaded explicitly from there on so
// organization scoping is never re-derived ad hoc.
type UserClaims interface {
	UserID() string
	OrganizationID() string
	Role() string
	DisplayName() string
	Source() string
	HasRole(roles ...constants.OrgRole) bool
}

// SessionClaims backs UserClaims for cookie/header session auth.
type SessionClaims struct {
	UserUUID  string
	OrgUUID   string
	RoleValue constants.OrgRole
	Name      string
}

func (c *SessionClaims) UserID() string         { return c.UserUUID }
func (c *SessionClaims) OrganizationID() string { return c.OrgUUID }
func (c *SessionClaims) Role() string           { return string(c.RoleValue) }
func (c *SessionClaims) DisplayName() string    { return c.Name }
func (c *SessionClaims) Source() string         { return "SESSION" }

func (c *SessionClaims) HasRole(roles ...constants.OrgRole) bool {
	for _, r := range roles {
		if c.RoleValue == r {
			return true
		}
	}
	return false
}
