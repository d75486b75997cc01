package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/diewo77/go-timebill/internal/models"
	"gorm.io/gorm"
)

// InvoiceService owns invoice persistence rules: number assignment, the status
// lifecycle, and duplication.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// highestIssued returns the largest numeric invoice number already assigned.
// Non-numeric numbers are ignored, so a store with none yields zero.
func highestIssued(tx *gorm.DB) int64 {
	var numbers []string
	tx.Model(&models.Invoice{}).Where("number <> ''").Pluck("number", &numbers)
	var highest int64
	for _, n := range numbers {
		if v, err := strconv.ParseInt(n, 10, 64); err == nil && v > highest {
			highest = v
		}
	}
	return highest
}

// nextNumber reserves the next sequence value inside the caller's transaction.
// The first assignment seeds the counter from the highest number already
// issued; afterwards the counter row is bumped with an atomic in-database
// increment, so concurrent creators serialize on the row instead of racing a
// scan. The unique index on invoices.number remains the backstop.
func (s *InvoiceService) nextNumber(tx *gorm.DB) (string, error) {
	var seq models.InvoiceSequence
	err := tx.First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		assigned := highestIssued(tx) + 1
		seq = models.InvoiceSequence{NextValue: assigned + 1}
		if err := tx.Create(&seq).Error; err != nil {
			return "", err
		}
		return models.FormatInvoiceNumber(assigned), nil
	}
	if err != nil {
		return "", err
	}
	res := tx.Model(&models.InvoiceSequence{}).
		Where("id = ?", seq.ID).
		Update("next_value", gorm.Expr("next_value + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if err := tx.First(&seq, seq.ID).Error; err != nil {
		return "", err
	}
	return models.FormatInvoiceNumber(seq.NextValue - 1), nil
}

// Create persists a new invoice and its work entries in one transaction.
// A number is assigned exactly once, on first persistence; invoices that
// already carry one keep it.
func (s *InvoiceService) Create(inv *models.Invoice, entries []models.WorkEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if inv.Status == "" {
			inv.Status = models.InvoiceStatusDraft
		}
		if inv.IssueDate.IsZero() {
			inv.IssueDate = time.Now()
		}
		if inv.Number == "" {
			number, err := s.nextNumber(tx)
			if err != nil {
				return err
			}
			inv.Number = number
		}
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].InvoiceID = inv.ID
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceEntries swaps the invoice's work entry set for a new one. Entries are
// only ever created or destroyed through their parent invoice's edit flow.
func (s *InvoiceService) ReplaceEntries(inv *models.Invoice, entries []models.WorkEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.WorkEntry{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].InvoiceID = inv.ID
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkSent persists draft -> sent. Returns false without touching the row
// when the invoice is not a draft.
func (s *InvoiceService) MarkSent(inv *models.Invoice) (bool, error) {
	if !inv.MarkSent() {
		return false, nil
	}
	if err := s.db.Model(inv).Update("status", inv.Status).Error; err != nil {
		return false, err
	}
	return true, nil
}

// MarkPaid persists sent -> paid. Returns false without touching the row
// when the invoice is not sent.
func (s *InvoiceService) MarkPaid(inv *models.Invoice) (bool, error) {
	if !inv.MarkPaid() {
		return false, nil
	}
	if err := s.db.Model(inv).Update("status", inv.Status).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Duplicate produces an independent copy of an invoice: same client reference,
// snapshot fields, period, rate and notes, but a fresh number, draft status,
// today's issue date and deep-copied work entries in work-date order.
func (s *InvoiceService) Duplicate(original *models.Invoice) (*models.Invoice, error) {
	var sourceEntries []models.WorkEntry
	if err := s.db.Where("invoice_id = ?", original.ID).Order("work_date").Find(&sourceEntries).Error; err != nil {
		return nil, err
	}

	dup := &models.Invoice{
		UserID:      original.UserID,
		ClientID:    original.ClientID,
		ClientName:  original.ClientName,
		ClientEmail: original.ClientEmail,
		PeriodType:  original.PeriodType,
		PeriodStart: original.PeriodStart,
		PeriodEnd:   original.PeriodEnd,
		HourlyRate:  original.HourlyRate,
		Status:      models.InvoiceStatusDraft,
		Notes:       original.Notes,
	}
	entries := make([]models.WorkEntry, 0, len(sourceEntries))
	for _, e := range sourceEntries {
		entries = append(entries, models.WorkEntry{
			WorkDate:    e.WorkDate,
			Hours:       e.Hours,
			Description: e.Description,
		})
	}
	if err := s.Create(dup, entries); err != nil {
		return nil, err
	}
	return dup, nil
}

// Revenue sums the total amount of a user's paid invoices.
func (s *InvoiceService) Revenue(userID uint) (float64, error) {
	var invoices []models.Invoice
	err := s.db.Where("user_id = ? AND status = ?", userID, models.InvoiceStatusPaid).
		Preload("Entries").
		Find(&invoices).Error
	if err != nil {
		return 0, err
	}
	var total float64
	for i := range invoices {
		total += invoices[i].TotalAmount()
	}
	return total, nil
}
