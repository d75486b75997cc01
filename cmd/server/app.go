package main

import (
	"net/http"

	"github.com/diewo77/go-timebill/auth"
	"github.com/diewo77/go-timebill/httpx"
	"github.com/diewo77/go-timebill/i18n"
	"github.com/diewo77/go-timebill/internal/handlers"
	"github.com/diewo77/go-timebill/internal/services"
	"github.com/diewo77/go-timebill/view"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB

	authHandler    *handlers.AuthHandler
	clientHandler  *handlers.ClientHandler
	invoiceHandler *handlers.InvoiceHandler
	profileHandler *handlers.ProfileHandler
	invoiceService *services.InvoiceService
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB) *App {
	invoiceSvc := services.NewInvoiceService(db)
	clientSvc := services.NewClientService(db)

	app := &App{
		mux:            http.NewServeMux(),
		db:             db,
		authHandler:    handlers.NewAuthHandler(db),
		clientHandler:  handlers.NewClientHandler(db, clientSvc),
		invoiceHandler: handlers.NewInvoiceHandler(db, invoiceSvc),
		profileHandler: handlers.NewProfileHandler(db),
		invoiceService: invoiceSvc,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Global middleware: auth context, then language preference.
	handler := auth.Middleware(withPreferences(a.mux))
	handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	ah := a.authHandler

	// Public routes
	a.mux.HandleFunc("GET /{$}", a.landingPage)
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /register", ah.Register)
	a.mux.HandleFunc("POST /register", ah.Register)
	a.mux.HandleFunc("GET /logout", ah.Logout)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.health)

	// Clients
	ch := a.clientHandler
	a.mux.Handle("GET /clients", a.requireAuth(http.HandlerFunc(ch.List)))
	a.mux.Handle("GET /clients/new", a.requireAuth(http.HandlerFunc(ch.New)))
	a.mux.Handle("POST /clients", a.requireAuth(http.HandlerFunc(ch.Create)))
	a.mux.Handle("GET /clients/{id}", a.requireAuth(http.HandlerFunc(ch.View)))
	a.mux.Handle("GET /clients/{id}/edit", a.requireAuth(http.HandlerFunc(ch.Edit)))
	a.mux.Handle("POST /clients/{id}", a.requireAuth(http.HandlerFunc(ch.Update)))
	a.mux.Handle("POST /clients/{id}/delete", a.requireAuth(http.HandlerFunc(ch.Delete)))

	// Invoices
	ih := a.invoiceHandler
	a.mux.Handle("GET /invoices", a.requireAuth(http.HandlerFunc(ih.List)))
	a.mux.Handle("GET /invoices/new", a.requireAuth(http.HandlerFunc(ih.New)))
	a.mux.Handle("GET /clients/{id}/invoices/new", a.requireAuth(http.HandlerFunc(ih.NewForClient)))
	a.mux.Handle("POST /invoices", a.requireAuth(http.HandlerFunc(ih.Create)))
	a.mux.Handle("GET /invoices/{id}", a.requireAuth(http.HandlerFunc(ih.View)))
	a.mux.Handle("GET /invoices/{id}/edit", a.requireAuth(http.HandlerFunc(ih.Edit)))
	a.mux.Handle("POST /invoices/{id}", a.requireAuth(http.HandlerFunc(ih.Update)))
	a.mux.Handle("POST /invoices/{id}/delete", a.requireAuth(http.HandlerFunc(ih.Delete)))
	a.mux.Handle("POST /invoices/{id}/mark-sent", a.requireAuth(http.HandlerFunc(ih.MarkSent)))
	a.mux.Handle("POST /invoices/{id}/mark-paid", a.requireAuth(http.HandlerFunc(ih.MarkPaid)))
	a.mux.Handle("POST /invoices/{id}/duplicate", a.requireAuth(http.HandlerFunc(ih.Duplicate)))
	a.mux.Handle("GET /invoices/{id}/pdf", a.requireAuth(http.HandlerFunc(ih.PDF)))

	// Business profile
	sh := a.profileHandler
	a.mux.Handle("GET /settings", a.requireAuth(http.HandlerFunc(sh.Edit)))
	a.mux.Handle("POST /settings", a.requireAuth(http.HandlerFunc(sh.Update)))

	// Pre-client installs bookmarked /employees; keep the old URLs working.
	a.mux.HandleFunc("GET /employees", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/clients", http.StatusMovedPermanently)
	})
	a.mux.HandleFunc("GET /employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/clients/"+r.PathValue("id"), http.StatusMovedPermanently)
	})
	a.mux.HandleFunc("GET /employees/{id}/invoices/new", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/clients/"+r.PathValue("id")+"/invoices/new", http.StatusMovedPermanently)
	})

	// Static files
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// requireAuth wraps a handler to require authentication.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return auth.RequireAuth(next)
}

// withPreferences resolves the language preference from cookie, query or the
// Accept-Language header and stores it in the request context.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		if lang == "" {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	if _, loggedIn := auth.UserIDFromContext(r.Context()); loggedIn {
		http.Redirect(w, r, "/invoices", http.StatusSeeOther)
		return
	}
	if err := view.Render(w, r, "index.html", nil); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.db.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "database unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
