package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/pkg/apperror"
	"github.com/sangkips/invoicely-api/pkg/logger"
	"github.com/sangkips/invoicely-api/pkg/metrics"
	"go.uber.org/zap"
)

const exportDateLayout = "2006-01-02"

// ExportFormat identifies a rendered file type
type ExportFormat string

const (
	ExportFormatPDF    ExportFormat = "pdf"
	ExportFormatXLSX   ExportFormat = "xlsx"
	ExportFormatESCPOS ExportFormat = "escpos"
)

var exportMimeTypes = map[ExportFormat]string{
	ExportFormatPDF:    "application/pdf",
	ExportFormatXLSX:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportFormatESCPOS: "application/octet-stream",
}

// Renderer turns an export record into file bytes
type Renderer interface {
	Render(rec *entity.ExportRecord) ([]byte, error)
}

// ExportFile is a rendered document ready to be downloaded
type ExportFile struct {
	Filename string
	MimeType string
	Data     []byte
}

// ExportService renders stored documents through the configured renderers
type ExportService struct {
	renderers map[ExportFormat]Renderer
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// NewExportService creates an export service. A nil renderer disables its format.
func NewExportService(pdf, xlsx Renderer, log *zap.Logger, m *metrics.Metrics) *ExportService {
	if log == nil {
		log = zap.NewNop()
	}
	renderers := make(map[ExportFormat]Renderer)
	if pdf != nil {
		renderers[ExportFormatPDF] = pdf
	}
	if xlsx != nil {
		renderers[ExportFormatXLSX] = xlsx
	}
	return &ExportService{renderers: renderers, log: log, metrics: m}
}

// Register adds or replaces the renderer for format
func (s *ExportService) Register(format ExportFormat, r Renderer) {
	if r == nil {
		delete(s.renderers, format)
		return
	}
	s.renderers[format] = r
}

// Export loads the document through docs and renders it in format
func (s *ExportService) Export(ctx context.Context, docs *DocumentService, id uuid.UUID, format ExportFormat) (*ExportFile, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unsupported export format %q", format))
	}

	doc, err := docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(ToExportModel(doc))
	if err != nil {
		logger.WithContext(ctx, s.log).Error("export rendering failed",
			zap.String("id", id.String()),
			zap.String("format", string(format)),
			zap.Error(err),
		)
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to render document")
	}

	s.metrics.DocumentExported(doc.Kind.String(), string(format))
	return &ExportFile{
		Filename: ExportFilename(doc, format),
		MimeType: exportMimeTypes[format],
		Data:     data,
	}, nil
}

// ExportFilename returns the download name, e.g. invoice-INV-001.pdf
func ExportFilename(doc *entity.Document, format ExportFormat) string {
	return fmt.Sprintf("%s-%s.%s", doc.Kind.String(), doc.Number, format)
}

// ToExportModel flattens a calculated document for renderers. Amounts are copied unrounded.
func ToExportModel(doc *entity.Document) *entity.ExportRecord {
	rec := &entity.ExportRecord{
		Kind:      doc.Kind,
		Title:     doc.Kind.Title(),
		Number:    doc.Number,
		IssueDate: doc.IssueDate.Format(exportDateLayout),
		From: entity.ExportParty{
			Name:    doc.IssuerName,
			Address: deref(doc.IssuerAddress),
			TaxID:   deref(doc.IssuerTaxID),
		},
		Items:    make([]entity.ExportItem, len(doc.Items)),
		Subtotal: doc.Subtotal,
		TotalTax: doc.TotalTax,
		Total:    doc.Total,
		Notes:    deref(doc.Notes),
	}

	title := doc.Kind.Title()
	rec.Fields = append(rec.Fields,
		entity.ExportField{Label: title + " Number", Value: doc.Number},
		entity.ExportField{Label: "Issue Date", Value: rec.IssueDate},
	)

	if doc.Kind == enum.DocumentKindInvoice {
		if doc.DueDate != nil {
			rec.DueDate = doc.DueDate.Format(exportDateLayout)
		}
		rec.Status = doc.Status.String()
		rec.Fields = append(rec.Fields,
			entity.ExportField{Label: "Due Date", Value: rec.DueDate},
			entity.ExportField{Label: "Status", Value: rec.Status},
		)
	} else {
		rec.PaymentMethod = doc.PaymentMethod.String()
		rec.Fields = append(rec.Fields, entity.ExportField{Label: "Payment Method", Value: rec.PaymentMethod})
	}

	rec.Fields = append(rec.Fields,
		entity.ExportField{},
		entity.ExportField{Label: "Issuer Name", Value: rec.From.Name},
		entity.ExportField{Label: "Issuer Address", Value: rec.From.Address},
	)

	if doc.ClientName != nil || doc.Kind == enum.DocumentKindInvoice {
		rec.To = &entity.ExportParty{
			Name:    deref(doc.ClientName),
			Address: deref(doc.ClientAddress),
			TaxID:   deref(doc.ClientTaxID),
		}
		rec.Fields = append(rec.Fields,
			entity.ExportField{},
			entity.ExportField{Label: "Client Name", Value: rec.To.Name},
			entity.ExportField{Label: "Client Address", Value: rec.To.Address},
		)
	}

	rec.Fields = append(rec.Fields,
		entity.ExportField{},
		entity.ExportField{Label: "Subtotal", Value: doc.Subtotal},
		entity.ExportField{Label: "Total Tax", Value: doc.TotalTax},
		entity.ExportField{Label: "Total", Value: doc.Total},
		entity.ExportField{},
		entity.ExportField{Label: "Notes", Value: rec.Notes},
	)

	for i := range doc.Items {
		item := &doc.Items[i]
		var taxes []entity.ExportTax
		for _, t := range item.Taxes {
			taxes = append(taxes, entity.ExportTax{Name: t.TaxName, Rate: t.TaxRate, Amount: t.TaxAmount})
		}
		rec.Items[i] = entity.ExportItem{
			ProductName: item.ProductName,
			Description: deref(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxAmount:   item.TaxAmount(),
			LineTotal:   item.LineTotal,
			Taxes:       taxes,
		}
	}
	return rec
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
