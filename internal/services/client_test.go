package services

import (
	"testing"

	"github.com/diewo77/go-timebill/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDeleteRefusedWhileInvoicesExist(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	clients := NewClientService(db)
	invoices := NewInvoiceService(db)

	client := models.Client{UserID: user.ID, Name: "Acme Corp", DefaultHourlyRate: 40, IsActive: true}
	require.NoError(t, db.Create(&client).Error)

	inv := draftInvoice(user.ID)
	inv.ClientID = &client.ID
	require.NoError(t, invoices.Create(inv, nil))

	err := clients.Delete(&client)
	require.ErrorIs(t, err, ErrClientHasInvoices)

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count).Error)
	require.EqualValues(t, 1, count, "refused delete must leave the row intact")
}

func TestDeleteSucceedsWithoutInvoices(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	clients := NewClientService(db)

	client := models.Client{UserID: user.ID, Name: "No Invoices Ltd", IsActive: true}
	require.NoError(t, db.Create(&client).Error)

	require.NoError(t, clients.Delete(&client))

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestDeactivateKeepsInvoicesLinked(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	clients := NewClientService(db)
	invoices := NewInvoiceService(db)

	client := models.Client{UserID: user.ID, Name: "Acme Corp", IsActive: true}
	require.NoError(t, db.Create(&client).Error)
	inv := draftInvoice(user.ID)
	inv.ClientID = &client.ID
	require.NoError(t, invoices.Create(inv, nil))

	require.NoError(t, clients.Deactivate(&client))

	var reloaded models.Client
	require.NoError(t, db.First(&reloaded, client.ID).Error)
	require.False(t, reloaded.IsActive)

	var linked int64
	require.NoError(t, db.Model(&models.Invoice{}).Where("client_id = ?", client.ID).Count(&linked).Error)
	require.EqualValues(t, 1, linked)
}
