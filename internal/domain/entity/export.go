package entity

import "github.com/sangkips/invoicely-api/internal/domain/enum"

// ExportField is one label/value pair of document metadata. Value is a string or a float64.
type ExportField struct {
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// ExportParty is the issuer or client block of an exported document
type ExportParty struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// ExportTax is one tax of an exported line. Rate is a fraction.
type ExportTax struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// ExportItem is one flattened line of an exported document. TaxAmount is the sum of Taxes.
type ExportItem struct {
	ProductName string      `json:"product_name"`
	Description string      `json:"description"`
	Quantity    float64     `json:"quantity"`
	UnitPrice   float64     `json:"unit_price"`
	TaxAmount   float64     `json:"tax_amount"`
	LineTotal   float64     `json:"line_total"`
	Taxes       []ExportTax `json:"taxes,omitempty"`
}

// ExportRecord is the flat view of a calculated document consumed by renderers.
// It is NOT a database entity. No value in it is rounded.
type ExportRecord struct {
	Kind          enum.DocumentKind `json:"kind"`
	Title         string            `json:"title"`
	Number        string            `json:"number"`
	IssueDate     string            `json:"issue_date"`
	DueDate       string            `json:"due_date,omitempty"`
	Status        string            `json:"status,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	From          ExportParty       `json:"from"`
	To            *ExportParty      `json:"to,omitempty"`
	Fields        []ExportField     `json:"fields"`
	Items         []ExportItem      `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	TotalTax      float64           `json:"total_tax"`
	Total         float64           `json:"total"`
	Notes         string            `json:"notes,omitempty"`
}
