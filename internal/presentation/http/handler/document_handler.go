package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoicely-api/internal/application/service"
	"github.com/sangkips/invoicely-api/internal/domain/billing"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/internal/presentation/http/dto/request"
	"github.com/sangkips/invoicely-api/internal/presentation/http/dto/response"
	"github.com/sangkips/invoicely-api/pkg/apperror"
)

// DocumentHandler serves one document kind. Invoices and receipts each get their own instance.
type DocumentHandler struct {
	docs    *service.DocumentService
	exports *service.ExportService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs *service.DocumentService, exports *service.ExportService) *DocumentHandler {
	return &DocumentHandler{docs: docs, exports: exports}
}

func (h *DocumentHandler) title() string {
	return h.docs.Kind().Title()
}

// List handles listing documents with optional search and status filters
func (h *DocumentHandler) List(c *gin.Context) {
	var filter request.DocumentFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	input := &service.ListInput{Search: filter.Search}
	if filter.Status != "" && h.docs.Kind() == enum.DocumentKindInvoice {
		status, err := enum.ParseInvoiceStatus(filter.Status)
		if err != nil {
			response.Error(c, apperror.NewFieldError("status", "must be one of draft, sent, paid, overdue"))
			return
		}
		input.Status = &status
	}

	docs, err := h.docs.List(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, h.title()+"s retrieved successfully", response.NewDocumentListResponse(docs))
}

// Create handles creating a document
func (h *DocumentHandler) Create(c *gin.Context) {
	var req request.DocumentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	doc, err := h.docs.Create(c.Request.Context(), toDocumentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, h.title()+" created successfully", response.NewDocumentResponse(doc))
}

// Get handles getting a single document with its items and taxes
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, h.docs.Kind().String())
	if !ok {
		return
	}

	doc, err := h.docs.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, h.title()+" retrieved successfully", response.NewDocumentResponse(doc))
}

// Update handles replacing a document and all of its items
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, h.docs.Kind().String())
	if !ok {
		return
	}

	var req request.DocumentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	doc, err := h.docs.Update(c.Request.Context(), id, toDocumentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, h.title()+" updated successfully", response.NewDocumentResponse(doc))
}

// UpdateStatus handles changing the status of an invoice
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, h.docs.Kind().String())
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	doc, err := h.docs.UpdateStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, h.title()+" status updated successfully", response.NewDocumentResponse(doc))
}

// Delete handles deleting a document
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, h.docs.Kind().String())
	if !ok {
		return
	}

	if err := h.docs.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// NextNumber handles suggesting the next document number
func (h *DocumentHandler) NextNumber(c *gin.Context) {
	number, err := h.docs.SuggestNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next number generated", gin.H{"number": number})
}

// ExportPDF handles downloading the document as a PDF
func (h *DocumentHandler) ExportPDF(c *gin.Context) {
	h.export(c, service.ExportFormatPDF)
}

// ExportXLSX handles downloading the document as an Excel workbook
func (h *DocumentHandler) ExportXLSX(c *gin.Context) {
	h.export(c, service.ExportFormatXLSX)
}

// ExportESCPOS handles downloading the document as an ESC/POS slip for receipt printers
func (h *DocumentHandler) ExportESCPOS(c *gin.Context) {
	h.export(c, service.ExportFormatESCPOS)
}

func (h *DocumentHandler) export(c *gin.Context, format service.ExportFormat) {
	id, ok := parseID(c, h.docs.Kind().String())
	if !ok {
		return
	}

	file, err := h.exports.Export(c.Request.Context(), h.docs, id, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, file.Filename, file.MimeType, file.Data)
}

// toDocumentInput converts wire percentages to fractions and parses dates
func toDocumentInput(req *request.DocumentRequest) *service.DocumentInput {
	input := &service.DocumentInput{
		Number:        req.Number,
		IssuerName:    req.IssuerName,
		IssuerAddress: req.IssuerAddress,
		IssuerTaxID:   req.IssuerTaxID,
		ClientName:    req.ClientName,
		ClientAddress: req.ClientAddress,
		ClientTaxID:   req.ClientTaxID,
		IssueDate:     parseDate(req.IssueDate),
		Notes:         req.Notes,
		Items:         make([]service.LineItemInput, len(req.Items)),
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due := parseDate(*req.DueDate)
		input.DueDate = &due
	}
	input.Status = req.Status
	if req.PaymentMethod != nil {
		input.PaymentMethod = *req.PaymentMethod
	}

	for i, item := range req.Items {
		taxes := make([]service.TaxInput, len(item.Taxes))
		for j, t := range item.Taxes {
			taxes[j] = service.TaxInput{Name: t.TaxName, Rate: billing.RateFromPercent(t.TaxRatePercent)}
		}
		input.Items[i] = service.LineItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Taxes:       taxes,
		}
	}
	return input
}
