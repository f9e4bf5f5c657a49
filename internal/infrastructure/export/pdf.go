package export

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/pkg/money"
)

// PDFRenderer lays out invoices and receipts as a single A4 document
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

var (
	cellText   = props.Text{Size: 9}
	cellRight  = props.Text{Size: 9, Align: align.Right}
	headerText = props.Text{Size: 9, Style: fontstyle.Bold}
	headerNum  = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
)

// Render produces the PDF bytes for rec
func (r *PDFRenderer) Render(rec *entity.ExportRecord) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, rec.Title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	meta := col.New(6).Add(
		text.New(rec.Title+" #: "+rec.Number, props.Text{Top: 0}),
		text.New("Date: "+rec.IssueDate, props.Text{Top: 5}),
	)
	switch {
	case rec.PaymentMethod != "":
		meta.Add(text.New("Payment: "+rec.PaymentMethod, props.Text{Top: 10}))
	case rec.DueDate != "":
		meta.Add(text.New("Due Date: "+rec.DueDate, props.Text{Top: 10}))
	}
	m.AddRow(20, meta, col.New(6))

	m.AddRow(30, partyCol("From:", &rec.From), partyCol("To:", rec.To))

	m.AddRow(8,
		text.NewCol(6, "Description", headerText),
		text.NewCol(1, "Qty", headerNum),
		text.NewCol(2, "Price", headerNum),
		text.NewCol(1, "Tax", headerNum),
		text.NewCol(2, "Total", headerNum),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range rec.Items {
		m.AddRow(8,
			text.NewCol(6, item.ProductName, cellText),
			text.NewCol(1, money.FormatQuantity(item.Quantity), cellRight),
			text.NewCol(2, money.FormatCurrency(item.UnitPrice), cellRight),
			text.NewCol(1, money.FormatCurrency(item.TaxAmount), cellRight),
			text.NewCol(2, money.FormatCurrency(item.LineTotal), cellRight),
		)
	}

	m.AddRow(2, line.NewCol(12))
	m.AddRow(7, col.New(8), text.NewCol(2, "Subtotal", cellText), text.NewCol(2, money.FormatCurrency(rec.Subtotal), cellRight))
	m.AddRow(7, col.New(8), text.NewCol(2, "Tax", cellText), text.NewCol(2, money.FormatCurrency(rec.TotalTax), cellRight))
	m.AddRow(8, col.New(8), text.NewCol(2, "Total", headerText), text.NewCol(2, money.FormatCurrency(rec.Total), headerNum))

	if rec.Notes != "" {
		m.AddRow(8, text.NewCol(12, "Notes:", props.Text{Size: 10, Style: fontstyle.Bold, Top: 3}))
		m.AddRow(15, text.NewCol(12, rec.Notes, props.Text{Size: 10}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func partyCol(label string, party *entity.ExportParty) core.Col {
	c := col.New(6)
	if party == nil {
		return c
	}
	c.Add(
		text.New(label, props.Text{Size: 12, Style: fontstyle.Bold}),
		text.New(party.Name, props.Text{Size: 10, Top: 6}),
	)
	top := 11.0
	for _, extra := range []string{party.Address, party.TaxID} {
		if extra == "" {
			continue
		}
		c.Add(text.New(extra, props.Text{Size: 10, Top: top}))
		top += 5
	}
	return c
}
