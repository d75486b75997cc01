// Package i18n provides minimal translation lookup for the UI layer.
package i18n

import (
	"context"
	"strings"
)

type ctxKey struct{}

// DefaultLang is used when no preference can be determined.
const DefaultLang = "en"

// WithLang stores the resolved language in the context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFromContext retrieves the language from context, defaulting to DefaultLang.
func LangFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(ctxKey{}).(string); ok && l != "" {
		return l
	}
	return DefaultLang
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptHeader string) string {
	for _, part := range strings.Split(acceptHeader, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(tag, "-;"); i > 0 {
			tag = tag[:i]
		}
		if _, ok := translations[tag]; ok {
			return tag
		}
	}
	return DefaultLang
}

var translations = map[string]map[string]string{
	"en": {
		"required":         "Required",
		"must_be_positive": "Must be positive",
		"out_of_range":     "Out of range",
		"invalid_email":    "Invalid email address",
		"invalid_date":     "Invalid date",
		"invalid_number":   "Invalid number",
		"period_inverted":  "Period end must not be before period start",
		"app_title":        "TimeBill",
		"nav_invoices":     "Invoices",
		"nav_clients":      "Clients",
		"nav_settings":     "Settings",
		"nav_login":        "Log in",
		"nav_register":     "Sign up",
		"nav_logout":       "Log out",
		"clients":          "Clients",
		"invoices":         "Invoices",
		"settings":         "Settings",
		"draft":            "Draft",
		"sent":             "Sent",
		"paid":             "Paid",
		"overdue":          "Overdue",
		"total_hours":      "Total hours",
		"total_amount":     "Total amount",
	},
	"fr": {
		"required":         "Requis",
		"must_be_positive": "Doit être positif",
		"out_of_range":     "Hors limites",
		"invalid_email":    "Adresse email invalide",
		"invalid_date":     "Date invalide",
		"invalid_number":   "Nombre invalide",
		"period_inverted":  "La fin de période doit suivre le début",
		"app_title":        "TimeBill",
		"nav_invoices":     "Factures",
		"nav_clients":      "Clients",
		"nav_settings":     "Paramètres",
		"nav_login":        "Connexion",
		"nav_register":     "Inscription",
		"nav_logout":       "Déconnexion",
		"clients":          "Clients",
		"invoices":         "Factures",
		"settings":         "Paramètres",
		"draft":            "Brouillon",
		"sent":             "Envoyée",
		"paid":             "Payée",
		"overdue":          "En retard",
		"total_hours":      "Heures totales",
		"total_amount":     "Montant total",
	},
}

// T translates a message code for the given language.
// Unknown languages fall back to the default table; unknown codes fall back to the code itself.
func T(lang, code string) string {
	if table, ok := translations[lang]; ok {
		if msg, ok := table[code]; ok {
			return msg
		}
	}
	if msg, ok := translations[DefaultLang][code]; ok {
		return msg
	}
	return code
}
