package handlers

import (
	"net/http"

	"github.com/diewo77/go-timebill/auth"
	"github.com/diewo77/go-timebill/internal/models"
	"github.com/diewo77/go-timebill/view"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// CheckCredentials verifies an email/password pair; used for both the login
// form and the Basic-auth fallback.
func (h *AuthHandler) CheckCredentials(email, password string) (uint, bool) {
	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		return 0, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return 0, false
	}
	return user.ID, true
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, r, "login.html", nil)
		return
	}

	uid, ok := h.CheckCredentials(r.FormValue("email"), r.FormValue("password"))
	if !ok {
		view.Render(w, r, "login.html", map[string]any{"Error": "Invalid email or password"})
		return
	}

	auth.CreateSession(w, uid)
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, r, "register.html", nil)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")

	if email == "" || password == "" {
		view.Render(w, r, "register.html", map[string]any{"Error": "Email and password are required"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		view.Render(w, r, "register.html", map[string]any{"Error": "Internal server error"})
		return
	}

	user := models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     name,
	}
	if err := h.db.Create(&user).Error; err != nil {
		view.Render(w, r, "register.html", map[string]any{"Error": "Email already exists"})
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
