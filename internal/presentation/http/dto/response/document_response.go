package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/billing"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
)

const dateLayout = "2006-01-02"

// TaxLineResponse is one tax of a line item. TaxRate is the stored fraction and
// TaxRatePercent the same rate in the unit requests use.
type TaxLineResponse struct {
	TaxName        string  `json:"tax_name"`
	TaxRate        float64 `json:"tax_rate"`
	TaxRatePercent float64 `json:"tax_rate_percent"`
	TaxAmount      float64 `json:"tax_amount"`
}

// LineItemResponse is one calculated line of a document
type LineItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   *uuid.UUID        `json:"product_id,omitempty"`
	ProductName string            `json:"product_name"`
	Description *string           `json:"description,omitempty"`
	Quantity    float64           `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	TaxAmount   float64           `json:"tax_amount"`
	LineTotal   float64           `json:"line_total"`
	Taxes       []TaxLineResponse `json:"taxes"`
}

// DocumentResponse is an invoice or receipt. Fields of the other kind are omitted.
type DocumentResponse struct {
	ID            uuid.UUID           `json:"id"`
	Kind          enum.DocumentKind   `json:"kind"`
	Number        string              `json:"number"`
	IssuerName    string              `json:"issuer_name"`
	IssuerAddress *string             `json:"issuer_address,omitempty"`
	IssuerTaxID   *string             `json:"issuer_tax_id,omitempty"`
	ClientName    *string             `json:"client_name,omitempty"`
	ClientAddress *string             `json:"client_address,omitempty"`
	ClientTaxID   *string             `json:"client_tax_id,omitempty"`
	IssueDate     string              `json:"issue_date"`
	DueDate       *string             `json:"due_date,omitempty"`
	Status        *enum.InvoiceStatus `json:"status,omitempty"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	Subtotal      float64             `json:"subtotal"`
	TotalTax      float64             `json:"total_tax"`
	Total         float64             `json:"total"`
	Items         []LineItemResponse  `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewDocumentResponse maps a document entity to its wire form
func NewDocumentResponse(doc *entity.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:            doc.ID,
		Kind:          doc.Kind,
		Number:        doc.Number,
		IssuerName:    doc.IssuerName,
		IssuerAddress: doc.IssuerAddress,
		IssuerTaxID:   doc.IssuerTaxID,
		ClientName:    doc.ClientName,
		ClientAddress: doc.ClientAddress,
		ClientTaxID:   doc.ClientTaxID,
		IssueDate:     doc.IssueDate.Format(dateLayout),
		Notes:         doc.Notes,
		Subtotal:      doc.Subtotal,
		TotalTax:      doc.TotalTax,
		Total:         doc.Total,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}

	if doc.IsInvoice() {
		status := doc.Status
		resp.Status = &status
		if doc.DueDate != nil {
			due := doc.DueDate.Format(dateLayout)
			resp.DueDate = &due
		}
	} else {
		method := doc.PaymentMethod
		resp.PaymentMethod = &method
	}

	for i := range doc.Items {
		item := &doc.Items[i]
		taxes := make([]TaxLineResponse, len(item.Taxes))
		for j, t := range item.Taxes {
			taxes[j] = TaxLineResponse{
				TaxName:        t.TaxName,
				TaxRate:        t.TaxRate,
				TaxRatePercent: billing.RateToPercent(t.TaxRate),
				TaxAmount:      t.TaxAmount,
			}
		}
		resp.Items = append(resp.Items, LineItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxAmount:   item.TaxAmount(),
			LineTotal:   item.LineTotal,
			Taxes:       taxes,
		})
	}
	return resp
}

// NewDocumentListResponse maps a list of document headers
func NewDocumentListResponse(docs []entity.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = NewDocumentResponse(&docs[i])
	}
	return out
}
