package gorm

import "time"

type Aircraft struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string    `gorm:"column:organization_id;type:uuid;index"`
	Registration   string    `gorm:"column:registration;uniqueIndex"`
	Model          string    `gorm:"column:model"`
	CurrentHobbs   float64   `gorm:"column:current_hobbs"`
	CurrentTacho   float64   `gorm:"column:current_tacho"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Rates   []AircraftRate `gorm:"foreignKey:AircraftID"`
	Defects []Defect       `gorm:"foreignKey:AircraftID"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}

// AircraftRate is one row of an aircraft's hourly rate table, keyed by
// flight type.
type AircraftRate struct {
	ID           string  `gorm:"column:id;primaryKey;type:uuid"`
	AircraftID   string  `gorm:"column:aircraft_id;type:uuid;index"`
	FlightTypeID string  `gorm:"column:flight_type_id;type:uuid"`
	HourlyRate   float64 `gorm:"column:hourly_rate"`
}

func (AircraftRate) TableName() string {
	return "aircraft_rates"
}

type FlightType struct {
	ID             string `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string `gorm:"column:organization_id;type:uuid;index"`
	Name           string `gorm:"column:name"`
}

func (FlightType) TableName() string {
	return "flight_types"
}

type Defect struct {
	ID             string     `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID string     `gorm:"column:organization_id;type:uuid;index"`
	AircraftID     string     `gorm:"column:aircraft_id;type:uuid;index"`
	ReportedByID   string     `gorm:"column:reported_by_id;type:uuid"`
	Description    string     `gorm:"column:description"`
	IsResolved     bool       `gorm:"column:is_resolved;default:false"`
	ReportedAt     time.Time  `gorm:"column:reported_at;autoCreateTime"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at"`
}

func (Defect) TableName() string {
	return "defects"
}
