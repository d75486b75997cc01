package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-timebill/auth"
	"github.com/diewo77/go-timebill/httpx"
	"github.com/diewo77/go-timebill/internal/models"
	"github.com/diewo77/go-timebill/internal/services"
	"github.com/diewo77/go-timebill/pdf"
	"github.com/diewo77/go-timebill/validation"
	"github.com/diewo77/go-timebill/view"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	db  *gorm.DB
	svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{db: db, svc: svc}
}

// currentWeek returns the Monday and Sunday around now, the default period
// pre-filled into the new-invoice form.
func currentWeek(now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	if weekday == 0 { // Go counts Sunday as 0, the week starts on Monday
		weekday = 7
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1-weekday)
	return start, start.AddDate(0, 0, 6)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var invoices []models.Invoice
	h.db.Where("user_id = ?", userID).Preload("Entries").Order("id DESC").Find(&invoices)

	view.Render(w, r, "invoices/index.html", map[string]any{
		"Invoices": invoices,
	})
}

func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var clients []models.Client
	h.db.Where("user_id = ? AND is_active = ?", userID, true).Order("name").Find(&clients)

	start, end := currentWeek(time.Now())
	view.Render(w, r, "invoices/new.html", map[string]any{
		"Clients":     clients,
		"ClientName":  "",
		"ClientEmail": "",
		"Notes":       "",
		"PeriodType":  models.PeriodWeekly,
		"PeriodStart": start.Format("2006-01-02"),
		"PeriodEnd":   end.Format("2006-01-02"),
		"HourlyRate":  50.0,
	})
}

// NewForClient pre-fills the form for one client: its snapshot fields, its
// default rate, and the current Monday-to-Sunday week.
func (h *InvoiceHandler) NewForClient(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var client models.Client
	if err := h.db.Where("id = ? AND user_id = ?", r.PathValue("id"), userID).First(&client).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	start, end := currentWeek(time.Now())
	view.Render(w, r, "invoices/new.html", map[string]any{
		"FixedClient": client,
		"ClientName":  client.Name,
		"ClientEmail": client.Email,
		"Notes":       "",
		"PeriodType":  models.PeriodWeekly,
		"PeriodStart": start.Format("2006-01-02"),
		"PeriodEnd":   end.Format("2006-01-02"),
		"HourlyRate":  client.DefaultHourlyRate,
	})
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	v := make(validation.Violations)
	periodStart, startErr := time.Parse("2006-01-02", r.FormValue("period_start"))
	periodEnd, endErr := time.Parse("2006-01-02", r.FormValue("period_end"))
	rate := parseFloatField(v, "hourly_rate", r.FormValue("hourly_rate"))

	invoice := models.Invoice{
		UserID:      userID,
		ClientName:  r.FormValue("client_name"),
		ClientEmail: r.FormValue("client_email"),
		PeriodType:  models.PeriodType(r.FormValue("period_type")),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		HourlyRate:  rate,
		Notes:       r.FormValue("notes"),
	}

	// A selected client pins the snapshot fields and the default rate.
	if cid, err := strconv.ParseUint(r.FormValue("client_id"), 10, 32); err == nil && cid > 0 {
		var client models.Client
		if err := h.db.Where("id = ? AND user_id = ?", cid, userID).First(&client).Error; err != nil {
			http.NotFound(w, r)
			return
		}
		id := client.ID
		invoice.ClientID = &id
		invoice.ClientName = client.Name
		invoice.ClientEmail = client.Email
		if invoice.HourlyRate == 0 {
			invoice.HourlyRate = client.DefaultHourlyRate
		}
	}

	validation.Required("client_name", invoice.ClientName, v)
	validation.OneOf("period_type", string(invoice.PeriodType), models.PeriodTypes(), v)
	validation.NonNegativeFloat("hourly_rate", invoice.HourlyRate, v)
	if startErr != nil {
		v["period_start"] = "invalid_date"
	}
	if endErr != nil {
		v["period_end"] = "invalid_date"
	}
	if startErr == nil && endErr == nil {
		validation.DateOrder("period_end", periodStart, periodEnd, v)
	}

	if !v.Empty() {
		var clients []models.Client
		h.db.Where("user_id = ? AND is_active = ?", userID, true).Order("name").Find(&clients)
		view.Render(w, r, "invoices/new.html", map[string]any{
			"Clients":     clients,
			"ClientName":  invoice.ClientName,
			"ClientEmail": invoice.ClientEmail,
			"Notes":       invoice.Notes,
			"PeriodType":  invoice.PeriodType,
			"PeriodStart": r.FormValue("period_start"),
			"PeriodEnd":   r.FormValue("period_end"),
			"HourlyRate":  invoice.HourlyRate,
			"Errors":      v,
		})
		return
	}

	entries := decodeWorkEntries(r.Form)
	if err := h.svc.Create(&invoice, entries); err != nil {
		http.Error(w, "Failed to create invoice", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(invoice.ID)), http.StatusSeeOther)
}

// find loads an invoice scoped to the authenticated user. A miss is reported
// as not found so the existence of another tenant's invoice is not revealed.
func (h *InvoiceHandler) find(w http.ResponseWriter, r *http.Request, preloadEntries bool) (*models.Invoice, bool) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	q := h.db.Where("id = ? AND user_id = ?", id, userID)
	if preloadEntries {
		q = q.Preload("Entries", func(tx *gorm.DB) *gorm.DB { return tx.Order("work_date") })
	}
	var invoice models.Invoice
	if err := q.First(&invoice).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &invoice, true
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.find(w, r, true)
	if !ok {
		return
	}
	view.Render(w, r, "invoices/view.html", map[string]any{
		"Invoice": invoice,
	})
}

func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.find(w, r, true)
	if !ok {
		return
	}
	if !invoice.CanEdit() {
		http.Redirect(w, r, "/invoices/"+r.PathValue("id"), http.StatusSeeOther)
		return
	}
	view.Render(w, r, "invoices/edit.html", map[string]any{
		"Invoice": invoice,
	})
}

// Update edits a draft invoice's period, rate and notes, and replaces its
// work-entry set from the batch fields. The number and snapshot are immutable.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.find(w, r, false)
	if !ok {
		return
	}
	if !invoice.CanEdit() {
		http.Error(w, "Cannot edit a sent invoice", http.StatusForbidden)
		return
	}

	v := make(validation.Violations)
	periodStart, startErr := time.Parse("2006-01-02", r.FormValue("period_start"))
	periodEnd, endErr := time.Parse("2006-01-02", r.FormValue("period_end"))
	rate := parseFloatField(v, "hourly_rate", r.FormValue("hourly_rate"))

	invoice.PeriodType = models.PeriodType(r.FormValue("period_type"))
	invoice.PeriodStart = periodStart
	invoice.PeriodEnd = periodEnd
	invoice.HourlyRate = rate
	invoice.Notes = r.FormValue("notes")

	validation.OneOf("period_type", string(invoice.PeriodType), models.PeriodTypes(), v)
	validation.NonNegativeFloat("hourly_rate", invoice.HourlyRate, v)
	if startErr != nil {
		v["period_start"] = "invalid_date"
	}
	if endErr != nil {
		v["period_end"] = "invalid_date"
	}
	if startErr == nil && endErr == nil {
		validation.DateOrder("period_end", periodStart, periodEnd, v)
	}
	if !v.Empty() {
		view.Render(w, r, "invoices/edit.html", map[string]any{
			"Invoice": invoice,
			"Errors":  v,
		})
		return
	}

	if err := h.db.Save(invoice).Error; err != nil {
		http.Error(w, "Failed to update invoice", http.StatusInternalServerError)
		return
	}
	if err := h.svc.ReplaceEntries(invoice, decodeWorkEntries(r.Form)); err != nil {
		http.Error(w, "Failed to update work entries", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/invoices/"+r.PathValue("id"), http.StatusSeeOther)
}

// MarkSent moves draft -> sent; anything else is ignored and redirects back.
func (h *InvoiceHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.find(w, r, false)
	if !ok {
		return
	}
	if _, err := h.svc.MarkSent(invoice); err != nil {
		http.Error(w, "Failed to update invoice", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/invoices/"+r.PathValue("id"), http.StatusSeeOther)
}

// MarkPaid moves sent -> paid; anything else is ignored and redirects back.
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.find(w, r, false)
	if !ok {
		return
	}
	if _, err := h.svc.MarkPaid(invoice); err != nil {
		http.Error(w, "Failed to update invoice", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/invoices/"+r.PathValue("id"), http.StatusSeeOther)
}

func (h *InvoiceHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.find(w, r, false)
	if !ok {
		return
	}
	dup, err := h.svc.Duplicate(invoice)
	if err != nil {
		http.Error(w, "Failed to duplicate invoice", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(dup.ID)), http.StatusSeeOther)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	invoice, ok := h.find(w, r, false)
	if !ok {
		return
	}
	if !invoice.CanEdit() {
		http.Error(w, "Cannot delete a sent invoice", http.StatusForbidden)
		return
	}
	// Work entries go with the invoice, never orphaned.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.WorkEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(invoice).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete invoice", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// PDF renders a fixed snapshot of the invoice as a downloadable document.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	invoice, ok := h.find(w, r, true)
	if !ok {
		return
	}

	var profile models.UserProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		profile.BusinessName = "My Business" // minimal fallback
	}

	data := pdf.InvoiceData{
		Number:      invoice.Number,
		IssueDate:   invoice.IssueDate.Format("2006-01-02"),
		PeriodLabel: invoice.PeriodLabel(),
		Status:      string(invoice.Status),
		ClientName:  invoice.ClientName,
		ClientEmail: invoice.ClientEmail,
		Business: pdf.BusinessData{
			Name:    profile.BusinessName,
			Phone:   profile.Phone,
			Address: profile.Address,
		},
		HourlyRate:  invoice.HourlyRate,
		TotalHours:  invoice.TotalHours(),
		TotalAmount: invoice.TotalAmount(),
		Notes:       invoice.Notes,
	}
	for _, e := range invoice.Entries {
		data.Entries = append(data.Entries, pdf.EntryData{
			Date:        e.WorkDate.Format("2006-01-02"),
			Description: e.Description,
			Hours:       e.Hours,
			Amount:      e.Hours * invoice.HourlyRate,
		})
	}

	out, err := pdf.InvoicePDF(data)
	if err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	name := invoice.Number
	if name == "" {
		name = strconv.Itoa(int(invoice.ID))
	}
	httpx.Attachment(w, "Invoice_"+name+".pdf", "application/pdf")
	w.Write(out)
}
