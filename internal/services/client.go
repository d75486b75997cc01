package services

import (
	"errors"

	"github.com/diewo77/go-timebill/internal/models"
	"gorm.io/gorm"
)

// ErrClientHasInvoices is returned when a hard delete would strand invoices
// that still reference the client.
var ErrClientHasInvoices = errors.New("client has invoices and cannot be deleted")

// ClientService owns the client deletion policy. The routed behavior is
// soft delete (Deactivate); hard delete exists for clients nothing refers to.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// Deactivate clears the active flag, keeping invoices referentially intact.
func (s *ClientService) Deactivate(client *models.Client) error {
	client.IsActive = false
	return s.db.Model(client).Update("is_active", false).Error
}

// Delete removes the client row. Refused with ErrClientHasInvoices when any
// invoice still references it.
func (s *ClientService) Delete(client *models.Client) error {
	var count int64
	if err := s.db.Model(&models.Invoice{}).Where("client_id = ?", client.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrClientHasInvoices
	}
	return s.db.Delete(client).Error
}
