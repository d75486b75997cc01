package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-timebill/auth"
	"github.com/diewo77/go-timebill/internal/models"
	"github.com/diewo77/go-timebill/validation"
	"github.com/diewo77/go-timebill/view"
	"gorm.io/gorm"
)

// ProfileHandler edits the user's business profile shown on invoices.
type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var profile models.UserProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First visit: show an empty form with defaults.
		profile.UserID = userID
		profile.DefaultHourlyRate = 50
	}

	view.Render(w, r, "settings.html", map[string]any{
		"Profile": profile,
	})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var profile models.UserProfile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	v := make(validation.Violations)
	rate := parseFloatField(v, "default_hourly_rate", r.FormValue("default_hourly_rate"))
	profile.UserID = userID
	profile.BusinessName = r.FormValue("business_name")
	profile.Phone = r.FormValue("phone")
	profile.Address = r.FormValue("address")
	profile.DefaultHourlyRate = rate

	validation.Required("business_name", profile.BusinessName, v)
	validation.NonNegativeFloat("default_hourly_rate", profile.DefaultHourlyRate, v)
	if !v.Empty() {
		view.Render(w, r, "settings.html", map[string]any{
			"Profile": profile,
			"Errors":  v,
		})
		return
	}

	if err := h.db.Save(&profile).Error; err != nil {
		view.Render(w, r, "settings.html", map[string]any{
			"Profile": profile,
			"Error":   "Failed to save settings",
		})
		return
	}

	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
