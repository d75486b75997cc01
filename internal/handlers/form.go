package handlers

import (
	"strconv"

	"github.com/diewo77/go-timebill/validation"
)

// parseFloatField parses a float form field. A malformed value is recorded as
// a violation instead of being coerced to zero; an empty value stays zero so
// defaults can apply.
func parseFloatField(v validation.Violations, field, raw string) float64 {
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v[field] = "invalid_number"
		return 0
	}
	return f
}
