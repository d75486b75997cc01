package validation

import (
	"testing"
	"time"
)

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	if v["name"] != "required" {
		t.Fatalf("expected required violation, got %q", v["name"])
	}
	v = make(Violations)
	Required("name", "Acme", v)
	if !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestNonNegativeFloat(t *testing.T) {
	v := make(Violations)
	NonNegativeFloat("rate", -0.01, v)
	if v["rate"] != "must_be_positive" {
		t.Fatalf("expected violation for negative rate")
	}
	v = make(Violations)
	NonNegativeFloat("rate", 0, v)
	if !v.Empty() {
		t.Fatalf("zero rate must be allowed")
	}
}

func TestEmail(t *testing.T) {
	v := make(Violations)
	Email("email", "not-an-email", v)
	if v["email"] != "invalid_email" {
		t.Fatalf("expected invalid_email violation")
	}
	v = make(Violations)
	Email("email", "", v)
	Email("email2", "a@b.example", v)
	if !v.Empty() {
		t.Fatalf("empty and valid emails must pass, got %v", v)
	}
}

func TestDateOrder(t *testing.T) {
	v := make(Violations)
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	DateOrder("period_end", start, start.AddDate(0, 0, -1), v)
	if v["period_end"] != "period_inverted" {
		t.Fatalf("expected period_inverted violation")
	}
	v = make(Violations)
	DateOrder("period_end", start, start, v)
	if !v.Empty() {
		t.Fatalf("equal start/end must be allowed")
	}
}

func TestOneOf(t *testing.T) {
	v := make(Violations)
	OneOf("period_type", "yearly", []string{"weekly", "fortnightly", "monthly", "custom"}, v)
	if v["period_type"] != "out_of_range" {
		t.Fatalf("expected out_of_range violation")
	}
}
