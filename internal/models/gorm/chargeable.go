package gorm

import "time"

// Chargeable is a billable line-item type: landing fee, airways fee,
// equipment hire, membership fee.
type Chargeable struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string    `gorm:"column:organization_id;type:uuid;index"`
	Name           string    `gorm:"column:name"`
	Category       string    `gorm:"column:category"`
	Amount         float64   `gorm:"column:amount"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Chargeable) TableName() string {
	return "chargeables"
}
