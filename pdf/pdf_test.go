package pdf

import (
	"bytes"
	"testing"
)

func TestInvoicePDF(t *testing.T) {
	data := InvoiceData{
		Number:      "00042",
		IssueDate:   "2025-03-14",
		PeriodLabel: "2025-03-10 – 2025-03-16",
		Status:      "draft",
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.example",
		Business:    BusinessData{Name: "Jane Doe Consulting", Address: "1 Main St", Phone: "+33 1 23 45 67 89"},
		HourlyRate:  40,
		Entries: []EntryData{
			{Date: "2025-03-10", Description: "API work", Hours: 2.5, Amount: 100},
			{Date: "2025-03-11", Description: "Frontend", Hours: 3, Amount: 120},
		},
		TotalHours:  5.5,
		TotalAmount: 220,
		Notes:       "Payable within 30 days.",
	}

	out, err := InvoicePDF(data)
	if err != nil {
		t.Fatalf("InvoicePDF: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty document")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", out[:min(8, len(out))])
	}
}

func TestInvoicePDFNoEntries(t *testing.T) {
	out, err := InvoicePDF(InvoiceData{Number: "00001", ClientName: "Empty Co", Business: BusinessData{Name: "B"}})
	if err != nil {
		t.Fatalf("InvoicePDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output does not look like a PDF")
	}
}
