package models

import "time"

// Employee is the legacy predecessor of Client, kept so historical rows keep
// loading. The employee routes redirect to the client pages.
type Employee struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Name              string    `gorm:"size:120;not null" json:"name"`
	Email             string    `gorm:"size:255" json:"email,omitempty"`
	DefaultHourlyRate float64   `gorm:"type:decimal(8,2);default:50" json:"default_hourly_rate"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
}
