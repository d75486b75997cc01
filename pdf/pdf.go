// Package pdf renders invoice documents with maroto.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// BusinessData is the issuer block, taken from the user's profile.
type BusinessData struct {
	Name    string
	Phone   string
	Address string
	Email   string
}

// EntryData is one billed work entry line.
type EntryData struct {
	Date        string
	Description string
	Hours       float64
	Amount      float64
}

// InvoiceData is a fixed snapshot of an invoice, independent of the models package.
type InvoiceData struct {
	Number      string
	IssueDate   string
	PeriodLabel string
	Status      string

	ClientName  string
	ClientEmail string

	Business BusinessData

	HourlyRate  float64
	Entries     []EntryData
	TotalHours  float64
	TotalAmount float64
	Notes       string
}

// InvoicePDF renders the invoice snapshot and returns the document bytes.
func InvoicePDF(data InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "INVOICE "+data.Number, props.Text{Size: 18, Style: fontstyle.Bold}),
		text.NewCol(4, data.Status, props.Text{Size: 12, Align: align.Right, Top: 4}),
	)
	m.AddRow(6,
		text.NewCol(6, data.Business.Name, props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(6, "Issue date: "+data.IssueDate, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(5,
		text.NewCol(6, data.Business.Address, props.Text{Size: 8}),
		text.NewCol(6, "Period: "+data.PeriodLabel, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(5, text.NewCol(12, data.Business.Phone, props.Text{Size: 8}))

	m.AddRow(8, text.NewCol(12, "Billed to", props.Text{Size: 9, Style: fontstyle.Bold, Top: 2}))
	m.AddRow(5, text.NewCol(12, data.ClientName, props.Text{Size: 9}))
	if data.ClientEmail != "" {
		m.AddRow(5, text.NewCol(12, data.ClientEmail, props.Text{Size: 8}))
	}

	m.AddRow(4, line.NewCol(12))
	m.AddRow(7,
		text.NewCol(3, "Date", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(5, "Description", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Hours", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, e := range data.Entries {
		m.AddRow(6,
			text.NewCol(3, e.Date, props.Text{Size: 9}),
			text.NewCol(5, e.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%.2f", e.Hours), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", e.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(4, line.NewCol(12))

	m.AddRow(6,
		text.NewCol(8, fmt.Sprintf("Hourly rate: %.2f", data.HourlyRate), props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%.2f", data.TotalHours), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("%.2f", data.TotalAmount), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	if data.Notes != "" {
		m.AddRow(8, text.NewCol(12, "Notes", props.Text{Size: 9, Style: fontstyle.Bold, Top: 2}))
		m.AddRow(6, text.NewCol(12, data.Notes, props.Text{Size: 8}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
