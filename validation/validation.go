// Package validation collects field-level violations for form handling.
package validation

import (
	"net/mail"
	"strings"
	"time"
)

// Violations maps a field name to a message code (translated by the view layer).
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Email flags a malformed address. Empty values are allowed; pair with Required if not.
func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "invalid_email"
	}
}

// DateOrder flags a period whose end precedes its start.
func DateOrder(field string, start, end time.Time, v Violations) {
	if end.Before(start) {
		v[field] = "period_inverted"
	}
}

// OneOf flags a value outside an allowed set (e.g. period types).
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "out_of_range"
}
