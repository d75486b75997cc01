package models

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a customer that invoices are issued to.
// Implements the Ownable interface for ownership-based authorization.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// UserID is the owner of this client (for multi-tenant isolation)
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Name              string  `gorm:"size:120;not null" json:"name"`
	Email             string  `gorm:"size:255" json:"email,omitempty"`
	DefaultHourlyRate float64 `gorm:"type:decimal(8,2);default:50" json:"default_hourly_rate"`
	// IsActive is cleared instead of deleting the row, so invoices keep their reference.
	IsActive bool `gorm:"default:true" json:"is_active"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`
}

// GetUserID implements the Ownable interface for authorization.
func (c *Client) GetUserID() uint {
	return c.UserID
}
