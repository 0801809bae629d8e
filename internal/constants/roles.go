package constants

import (
	"database/sql/driver"
	"fmt"
)

// OrgRole mirrors the Postgres ENUM 'org_role'
type OrgRole string

const (
	RoleMember     OrgRole = "member"
	RoleInstructor OrgRole = "instructor"
	RoleAdmin      OrgRole = "admin"
	RoleOwner      OrgRole = "owner"
)

// Stringer ­– convenient for fmt / logs
func (r OrgRole) String() string { return string(r) }

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *OrgRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = OrgRole(v)
	case []byte:
		*r = OrgRole(v)
	default:
		return fmt.Errorf("OrgRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r OrgRole) Value() (driver.Value, error) { return string(r), nil }
