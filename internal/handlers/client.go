package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/go-timebill/auth"
	"github.com/diewo77/go-timebill/internal/models"
	"github.com/diewo77/go-timebill/internal/services"
	"github.com/diewo77/go-timebill/validation"
	"github.com/diewo77/go-timebill/view"
	"gorm.io/gorm"
)

type ClientHandler struct {
	db  *gorm.DB
	svc *services.ClientService
}

func NewClientHandler(db *gorm.DB, svc *services.ClientService) *ClientHandler {
	return &ClientHandler{db: db, svc: svc}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")

	db := h.db.Where("user_id = ?", userID)
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	switch status {
	case "active":
		db = db.Where("is_active = ?", true)
	case "inactive":
		db = db.Where("is_active = ?", false)
	}

	var clients []models.Client
	db.Order("name").Find(&clients)

	view.Render(w, r, "clients/index.html", map[string]any{
		"Clients": clients,
		"Query":   query,
		"Status":  status,
	})
}

func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "clients/new.html", map[string]any{
		"Client": models.Client{},
	})
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	v := make(validation.Violations)
	rate := parseFloatField(v, "default_hourly_rate", r.FormValue("default_hourly_rate"))
	client := models.Client{
		UserID:            userID,
		Name:              r.FormValue("name"),
		Email:             r.FormValue("email"),
		DefaultHourlyRate: rate,
		IsActive:          r.FormValue("is_active") != "false",
	}

	validation.Required("name", client.Name, v)
	validation.Email("email", client.Email, v)
	validation.NonNegativeFloat("default_hourly_rate", client.DefaultHourlyRate, v)

	if !v.Empty() {
		view.Render(w, r, "clients/new.html", map[string]any{
			"Client": client,
			"Errors": v,
		})
		return
	}

	if err := h.db.Create(&client).Error; err != nil {
		view.Render(w, r, "clients/new.html", map[string]any{
			"Client": client,
			"Error":  "Failed to create client",
		})
		return
	}

	http.Redirect(w, r, "/clients/"+strconv.Itoa(int(client.ID)), http.StatusSeeOther)
}

// find loads a client scoped to the authenticated user. A miss is reported as
// not found so the existence of another tenant's client is not revealed.
func (h *ClientHandler) find(w http.ResponseWriter, r *http.Request) (*models.Client, bool) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var client models.Client
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &client, true
}

func (h *ClientHandler) View(w http.ResponseWriter, r *http.Request) {
	client, ok := h.find(w, r)
	if !ok {
		return
	}

	var invoices []models.Invoice
	h.db.Where("client_id = ?", client.ID).Order("id DESC").Find(&invoices)

	view.Render(w, r, "clients/view.html", map[string]any{
		"Client":   client,
		"Invoices": invoices,
	})
}

func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	client, ok := h.find(w, r)
	if !ok {
		return
	}
	view.Render(w, r, "clients/edit.html", map[string]any{
		"Client": client,
	})
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	client, ok := h.find(w, r)
	if !ok {
		return
	}

	v := make(validation.Violations)
	rate := parseFloatField(v, "default_hourly_rate", r.FormValue("default_hourly_rate"))
	client.Name = r.FormValue("name")
	client.Email = r.FormValue("email")
	client.DefaultHourlyRate = rate
	client.IsActive = r.FormValue("is_active") != "false"

	validation.Required("name", client.Name, v)
	validation.Email("email", client.Email, v)
	validation.NonNegativeFloat("default_hourly_rate", client.DefaultHourlyRate, v)

	if !v.Empty() {
		view.Render(w, r, "clients/edit.html", map[string]any{
			"Client": client,
			"Errors": v,
		})
		return
	}

	if err := h.db.Save(client).Error; err != nil {
		view.Render(w, r, "clients/edit.html", map[string]any{
			"Client": client,
			"Error":  "Failed to update client",
		})
		return
	}

	http.Redirect(w, r, "/clients/"+r.PathValue("id"), http.StatusSeeOther)
}

// Delete soft-deletes: the client is deactivated and its invoices stay
// referentially linked.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	client, ok := h.find(w, r)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(client); err != nil {
		http.Error(w, "Failed to delete client", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}
