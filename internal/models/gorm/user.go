package gorm

import (
	"aeroclub/flightdesk/internal/constants"
	"time"
)

type User struct {
	ID             string            `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string            `gorm:"column:organization_id;type:uuid;index"`
	ExternalID     string            `gorm:"column:external_id;uniqueIndex"`
	DisplayName    string            `gorm:"column:display_name"`
	Email          *string           `gorm:"column:email"`
	Role           constants.OrgRole `gorm:"column:role;type:org_role;default:member"`
	IsActive       bool              `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

type Organization struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	Name      string    `gorm:"column:name"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Organization) TableName() string {
	return "organizations"
}
