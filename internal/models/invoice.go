package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// PeriodType describes how the billed period was chosen.
type PeriodType string

const (
	PeriodWeekly      PeriodType = "weekly"
	PeriodFortnightly PeriodType = "fortnightly"
	PeriodMonthly     PeriodType = "monthly"
	PeriodCustom      PeriodType = "custom"
)

// PeriodTypes lists the accepted period_type form values.
func PeriodTypes() []string {
	return []string{string(PeriodWeekly), string(PeriodFortnightly), string(PeriodMonthly), string(PeriodCustom)}
}

// paymentWindowDays is the grace period after period end before a sent
// invoice is displayed as overdue. There is no background job; overdue is
// either assigned directly or derived at render time.
const paymentWindowDays = 30

// Invoice represents a billed period of hourly work for one client.
// Implements the Ownable interface for ownership-based authorization.
type Invoice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// UserID is the owner of this invoice (for multi-tenant isolation)
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// Number is assigned exactly once, on first persistence, and never changes.
	Number string `gorm:"size:20;uniqueIndex" json:"number"`

	// Client reference plus a snapshot of its name/email taken at creation
	// time, so later client edits do not rewrite issued invoices.
	ClientID    *uint   `gorm:"index" json:"client_id,omitempty"`
	Client      *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ClientName  string  `gorm:"size:120;not null" json:"client_name"`
	ClientEmail string  `gorm:"size:255" json:"client_email,omitempty"`

	PeriodType  PeriodType `gorm:"size:12;default:'weekly'" json:"period_type"`
	PeriodStart time.Time  `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time  `gorm:"not null" json:"period_end"`

	HourlyRate float64       `gorm:"type:decimal(8,2);default:50" json:"hourly_rate"`
	IssueDate  time.Time     `gorm:"not null" json:"issue_date"`
	Status     InvoiceStatus `gorm:"size:20;default:'draft'" json:"status"`
	Notes      string        `gorm:"type:text" json:"notes,omitempty"`

	Entries []WorkEntry `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

// GetUserID implements the Ownable interface for authorization.
// Value receivers keep the read-only methods callable on invoices ranged over
// in templates.
func (i Invoice) GetUserID() uint {
	return i.UserID
}

func (i Invoice) IsDraft() bool { return i.Status == InvoiceStatusDraft }
func (i Invoice) IsSent() bool  { return i.Status == InvoiceStatusSent }
func (i Invoice) IsPaid() bool  { return i.Status == InvoiceStatusPaid }

// CanEdit returns true if the invoice (and its work entries) can still be edited.
func (i Invoice) CanEdit() bool {
	return i.Status == InvoiceStatusDraft
}

// MarkSent moves draft -> sent. Any other current status is a silent no-op.
func (i *Invoice) MarkSent() bool {
	if i.Status != InvoiceStatusDraft {
		return false
	}
	i.Status = InvoiceStatusSent
	return true
}

// MarkPaid moves sent -> paid. Any other current status is a silent no-op.
func (i *Invoice) MarkPaid() bool {
	if i.Status != InvoiceStatusSent {
		return false
	}
	i.Status = InvoiceStatusPaid
	return true
}

// IsOverdue derives display-overdue: a sent invoice whose payment window has
// passed, or one explicitly flagged overdue.
func (i Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoiceStatusOverdue {
		return true
	}
	return i.Status == InvoiceStatusSent && now.After(i.PeriodEnd.AddDate(0, 0, paymentWindowDays))
}

// DisplayStatus maps a sent invoice past its payment window to overdue for
// lists and detail pages; the stored status is untouched.
func (i Invoice) DisplayStatus(now time.Time) InvoiceStatus {
	if i.IsOverdue(now) {
		return InvoiceStatusOverdue
	}
	return i.Status
}

// TotalHours sums the hours over the loaded work entries. Empty set is zero.
func (i Invoice) TotalHours() float64 {
	var total float64
	for _, e := range i.Entries {
		total += e.Hours
	}
	return total
}

// TotalAmount is total hours times the invoice's hourly rate, recomputed on
// read and never stored.
func (i Invoice) TotalAmount() float64 {
	return i.TotalHours() * i.HourlyRate
}

// PeriodLabel formats the billed period for display and the PDF snapshot.
func (i Invoice) PeriodLabel() string {
	return fmt.Sprintf("%s to %s", i.PeriodStart.Format("2006-01-02"), i.PeriodEnd.Format("2006-01-02"))
}

// WorkEntry is a single dated record of hours worked on one invoice.
// Entries are cascade-deleted with their parent and ordered by work date.
type WorkEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID uint     `gorm:"index;not null" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID" json:"-"`

	WorkDate    time.Time `gorm:"not null" json:"work_date"`
	Hours       float64   `gorm:"type:decimal(5,2);not null" json:"hours"`
	Description string    `gorm:"size:200" json:"description,omitempty"`
}

// Amount is hours times the parent invoice's hourly rate, or zero when the
// entry is not attached to a loaded invoice.
func (e WorkEntry) Amount() float64 {
	if e.Invoice == nil {
		return 0
	}
	return e.Hours * e.Invoice.HourlyRate
}

// InvoiceSequence is the single-row counter backing invoice number assignment.
// Incrementing it inside the creating transaction removes the read-then-write
// race of scanning for the current maximum; the unique index on
// invoices.number remains the backstop.
type InvoiceSequence struct {
	ID        uint  `gorm:"primaryKey"`
	NextValue int64 `gorm:"not null;default:1"`
}

// FormatInvoiceNumber renders a sequence value as the fixed-width external
// identifier, e.g. 1 -> "00001".
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("%05d", n)
}
