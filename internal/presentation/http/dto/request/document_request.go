package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
)

// DateLayout is the wire format of every date field
const DateLayout = "2006-01-02"

// TaxRequest is one tax of a line item. The rate is a percentage (16 for 16%).
type TaxRequest struct {
	TaxName        string  `json:"tax_name" validate:"required,max=100"`
	TaxRatePercent float64 `json:"tax_rate_percent" validate:"gte=0"`
}

// LineItemRequest represents one line of an invoice or receipt.
// ProductName may be left blank when ProductID is set.
type LineItemRequest struct {
	ProductID   *uuid.UUID   `json:"product_id"`
	ProductName string       `json:"product_name" validate:"max=255"`
	Description *string      `json:"description"`
	Quantity    float64      `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	Taxes       []TaxRequest `json:"taxes" validate:"omitempty,dive"`
}

// DocumentRequest represents an invoice or receipt create/update request.
// Status and DueDate are read for invoices, PaymentMethod for receipts.
type DocumentRequest struct {
	Number        string              `json:"number" validate:"max=100"`
	IssuerName    string              `json:"issuer_name" validate:"max=255"`
	IssuerAddress *string             `json:"issuer_address"`
	IssuerTaxID   *string             `json:"issuer_tax_id" validate:"omitempty,max=100"`
	ClientName    *string             `json:"client_name" validate:"omitempty,max=255"`
	ClientAddress *string             `json:"client_address"`
	ClientTaxID   *string             `json:"client_tax_id" validate:"omitempty,max=100"`
	IssueDate     string              `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate       *string             `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status        *enum.InvoiceStatus `json:"status"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method"`
	Notes         *string             `json:"notes"`
	Items         []LineItemRequest   `json:"items" validate:"dive"`
}

// UpdateStatusRequest represents an invoice status change
type UpdateStatusRequest struct {
	Status *enum.InvoiceStatus `json:"status" validate:"required"`
}

// DocumentFilterRequest represents document list filters
type DocumentFilterRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

// DashboardRequest bounds the dashboard statistics. Both dates are inclusive.
type DashboardRequest struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}
