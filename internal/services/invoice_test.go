package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/diewo77/go-timebill/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")
	err = db.AutoMigrate(
		&models.User{}, &models.UserProfile{}, &models.Employee{},
		&models.Client{}, &models.Invoice{}, &models.WorkEntry{}, &models.InvoiceSequence{},
	)
	require.NoError(t, err, "migrate")
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Email: t.Name() + "@test", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func draftInvoice(userID uint) *models.Invoice {
	return &models.Invoice{
		UserID:      userID,
		ClientName:  "Acme Corp",
		PeriodType:  models.PeriodWeekly,
		PeriodStart: day(2025, 3, 10),
		PeriodEnd:   day(2025, 3, 16),
		HourlyRate:  40,
	}
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	for _, want := range []string{"00001", "00002", "00003"} {
		inv := draftInvoice(user.ID)
		require.NoError(t, svc.Create(inv, nil))
		require.Equal(t, want, inv.Number)
		require.Equal(t, models.InvoiceStatusDraft, inv.Status)
	}
}

func TestNumberSeededFromHighestExisting(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	// Rows written before the counter existed, including a non-numeric one.
	pre := draftInvoice(user.ID)
	pre.Number = "00041"
	pre.IssueDate = day(2025, 1, 2)
	require.NoError(t, db.Create(pre).Error)
	legacy := draftInvoice(user.ID)
	legacy.Number = "DRAFT-20250102-120000"
	legacy.IssueDate = day(2025, 1, 2)
	require.NoError(t, db.Create(legacy).Error)

	inv := draftInvoice(user.ID)
	require.NoError(t, svc.Create(inv, nil))
	require.Equal(t, "00042", inv.Number)
}

func TestNumberImmutableAcrossSaves(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	inv := draftInvoice(user.ID)
	require.NoError(t, svc.Create(inv, nil))
	assigned := inv.Number

	inv.Notes = "updated after the fact"
	require.NoError(t, db.Save(inv).Error)

	var reloaded models.Invoice
	require.NoError(t, db.First(&reloaded, inv.ID).Error)
	require.Equal(t, assigned, reloaded.Number)

	// An invoice that already carries a number keeps it through Create.
	kept := draftInvoice(user.ID)
	kept.Number = "90000"
	require.NoError(t, svc.Create(kept, nil))
	require.Equal(t, "90000", kept.Number)
}

func TestCreatePersistsEntriesAndTotals(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	inv := draftInvoice(user.ID)
	entries := []models.WorkEntry{
		{WorkDate: day(2025, 3, 11), Hours: 3.0, Description: "frontend"},
		{WorkDate: day(2025, 3, 10), Hours: 2.5, Description: "api work"},
	}
	require.NoError(t, svc.Create(inv, entries))

	var loaded models.Invoice
	require.NoError(t, db.Preload("Entries", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("work_date")
	}).First(&loaded, inv.ID).Error)

	require.Len(t, loaded.Entries, 2)
	require.Equal(t, "api work", loaded.Entries[0].Description, "entries ordered by work date")
	require.InDelta(t, 5.5, loaded.TotalHours(), 0.001)
	require.InDelta(t, 220.0, loaded.TotalAmount(), 0.001)
}

func TestMarkSentAndPaidLifecycle(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	inv := draftInvoice(user.ID)
	require.NoError(t, svc.Create(inv, nil))

	// paid before sent: silent no-op
	changed, err := svc.MarkPaid(inv)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, models.InvoiceStatusDraft, inv.Status)

	changed, err = svc.MarkSent(inv)
	require.NoError(t, err)
	require.True(t, changed)

	// marking sent again: silent no-op
	changed, err = svc.MarkSent(inv)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = svc.MarkPaid(inv)
	require.NoError(t, err)
	require.True(t, changed)

	var reloaded models.Invoice
	require.NoError(t, db.First(&reloaded, inv.ID).Error)
	require.Equal(t, models.InvoiceStatusPaid, reloaded.Status)
}

func TestDuplicateDeepCopiesEntries(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	original := draftInvoice(user.ID)
	original.Notes = "march retainer"
	entries := []models.WorkEntry{
		{WorkDate: day(2025, 3, 10), Hours: 2.5, Description: "api work"},
		{WorkDate: day(2025, 3, 11), Hours: 3.0, Description: "frontend"},
	}
	require.NoError(t, svc.Create(original, entries))
	_, err := svc.MarkSent(original)
	require.NoError(t, err)

	dup, err := svc.Duplicate(original)
	require.NoError(t, err)
	require.NotEqual(t, original.ID, dup.ID)
	require.NotEqual(t, original.Number, dup.Number)
	require.Equal(t, models.InvoiceStatusDraft, dup.Status)
	require.Equal(t, original.ClientName, dup.ClientName)
	require.Equal(t, original.Notes, dup.Notes)

	var dupEntries []models.WorkEntry
	require.NoError(t, db.Where("invoice_id = ?", dup.ID).Order("work_date").Find(&dupEntries).Error)
	require.Len(t, dupEntries, 2)
	require.Equal(t, "api work", dupEntries[0].Description)

	// Mutating a copied entry must not alter the original's entries.
	dupEntries[0].Hours = 99
	require.NoError(t, db.Save(&dupEntries[0]).Error)
	var origEntries []models.WorkEntry
	require.NoError(t, db.Where("invoice_id = ?", original.ID).Order("work_date").Find(&origEntries).Error)
	require.InDelta(t, 2.5, origEntries[0].Hours, 0.001)
}

func TestRevenueSumsPaidInvoicesOnly(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	paid := draftInvoice(user.ID)
	require.NoError(t, svc.Create(paid, []models.WorkEntry{{WorkDate: day(2025, 3, 10), Hours: 2}}))
	_, err := svc.MarkSent(paid)
	require.NoError(t, err)
	_, err = svc.MarkPaid(paid)
	require.NoError(t, err)

	unpaid := draftInvoice(user.ID)
	require.NoError(t, svc.Create(unpaid, []models.WorkEntry{{WorkDate: day(2025, 3, 11), Hours: 8}}))

	total, err := svc.Revenue(user.ID)
	require.NoError(t, err)
	require.InDelta(t, 80.0, total, 0.001)
}

func TestReplaceEntries(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := NewInvoiceService(db)

	inv := draftInvoice(user.ID)
	require.NoError(t, svc.Create(inv, []models.WorkEntry{{WorkDate: day(2025, 3, 10), Hours: 1}}))

	require.NoError(t, svc.ReplaceEntries(inv, []models.WorkEntry{
		{WorkDate: day(2025, 3, 12), Hours: 4, Description: "replaced"},
	}))

	var entries []models.WorkEntry
	require.NoError(t, db.Where("invoice_id = ?", inv.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, "replaced", entries[0].Description)
}
