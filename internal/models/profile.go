package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile holds the business identity printed on a user's invoices.
// One-to-one with User.
type UserProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	BusinessName      string  `gorm:"size:255" json:"business_name,omitempty"`
	Phone             string  `gorm:"size:50" json:"phone,omitempty"`
	Address           string  `gorm:"size:500" json:"address,omitempty"`
	DefaultHourlyRate float64 `gorm:"type:decimal(8,2);default:50" json:"default_hourly_rate"`
}

// GetUserID implements the Ownable interface.
func (p *UserProfile) GetUserID() uint {
	return p.UserID
}
