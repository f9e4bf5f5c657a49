package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/billing"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Document is an invoice or a receipt. Kind-specific columns are ignored for the other kind.
type Document struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Kind          enum.DocumentKind  `gorm:"not null;uniqueIndex:idx_documents_kind_number,priority:1" json:"kind"`
	Number        string             `gorm:"size:100;not null;uniqueIndex:idx_documents_kind_number,priority:2" json:"number"`
	IssuerName    string             `gorm:"size:255;not null" json:"issuer_name"`
	IssuerAddress *string            `gorm:"type:text" json:"issuer_address,omitempty"`
	IssuerTaxID   *string            `gorm:"size:100" json:"issuer_tax_id,omitempty"`
	ClientName    *string            `gorm:"size:255" json:"client_name,omitempty"`
	ClientAddress *string            `gorm:"type:text" json:"client_address,omitempty"`
	ClientTaxID   *string            `gorm:"size:100" json:"client_tax_id,omitempty"`
	IssueDate     time.Time          `gorm:"not null;index" json:"issue_date"`
	DueDate       *time.Time         `json:"due_date,omitempty"`
	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	Subtotal      float64            `gorm:"not null;default:0" json:"subtotal"`
	TotalTax      float64            `gorm:"not null;default:0" json:"total_tax"`
	Total         float64            `gorm:"not null;default:0" json:"total"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Items []LineItem `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// IsInvoice reports whether the document is an invoice
func (d *Document) IsInvoice() bool {
	return d.Kind == enum.DocumentKindInvoice
}

// Totals returns the stored document totals
func (d *Document) Totals() billing.Totals {
	return billing.Totals{Subtotal: d.Subtotal, TotalTax: d.TotalTax, Total: d.Total}
}

// Recalculate derives every tax amount, line total and document total again from
// quantities, prices and rates. Stored derived values are overwritten.
func (d *Document) Recalculate() error {
	input := make([]billing.LineItem, len(d.Items))
	for i := range d.Items {
		input[i] = d.Items[i].ToBilling()
	}

	calculated, totals, err := billing.CalculateDocument(input)
	if err != nil {
		return err
	}

	for i := range d.Items {
		d.Items[i].applyCalculation(calculated[i])
	}
	d.Subtotal = totals.Subtotal
	d.TotalTax = totals.TotalTax
	d.Total = totals.Total
	return nil
}

// LineItem represents a row on an invoice or receipt
type LineItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"document_id"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName string     `gorm:"size:255;not null" json:"product_name"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Quantity    float64    `gorm:"not null" json:"quantity"`
	UnitPrice   float64    `gorm:"not null" json:"unit_price"`
	LineTotal   float64    `gorm:"not null;default:0" json:"line_total"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relationships
	Product *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	Taxes   []TaxLine `gorm:"foreignKey:LineItemID;constraint:OnDelete:CASCADE" json:"taxes"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *LineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}

// TaxAmount sums the tax lines of the item
func (li *LineItem) TaxAmount() float64 {
	var sum float64
	for _, t := range li.Taxes {
		sum += t.TaxAmount
	}
	return sum
}

// ToBilling returns the calculation view of the item
func (li *LineItem) ToBilling() billing.LineItem {
	out := billing.LineItem{
		ProductName: li.ProductName,
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice,
		LineTotal:   li.LineTotal,
		Taxes:       make([]billing.TaxLine, len(li.Taxes)),
	}
	if li.Description != nil {
		out.Description = *li.Description
	}
	for i, t := range li.Taxes {
		out.Taxes[i] = billing.TaxLine{Name: t.TaxName, Rate: t.TaxRate, Amount: t.TaxAmount}
	}
	return out
}

func (li *LineItem) applyCalculation(c billing.LineItem) {
	li.LineTotal = c.LineTotal
	for i := range li.Taxes {
		li.Taxes[i].TaxAmount = c.Taxes[i].Amount
	}
}

// TaxLine is one named tax charged on a line item. TaxRate is a fraction.
type TaxLine struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LineItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"line_item_id"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	TaxName    string    `gorm:"size:100;not null" json:"tax_name"`
	TaxRate    float64   `gorm:"not null" json:"tax_rate"`
	TaxAmount  float64   `gorm:"not null;default:0" json:"tax_amount"`
}

// BeforeCreate generates a UUID before creating a new tax line
func (t *TaxLine) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxLine model
func (TaxLine) TableName() string {
	return "tax_lines"
}
