package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/billing"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/internal/domain/repository"
	"github.com/sangkips/invoicely-api/pkg/apperror"
	"github.com/sangkips/invoicely-api/pkg/logger"
	"github.com/sangkips/invoicely-api/pkg/metrics"
	"go.uber.org/zap"
)

// totalsTolerance absorbs float noise between stored and recalculated totals
const totalsTolerance = 1e-9

// DocumentService manages the lifecycle of one kind of document: invoices or receipts
type DocumentService struct {
	kind        enum.DocumentKind
	prefix      string
	docRepo     repository.DocumentRepository
	productRepo repository.ProductRepository
	log         *zap.Logger
	metrics     *metrics.Metrics
}

// NewDocumentService creates a document service bound to kind and its numbering prefix.
// productRepo may be nil, in which case product references are stored unchecked.
func NewDocumentService(
	kind enum.DocumentKind,
	prefix string,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	log *zap.Logger,
	m *metrics.Metrics,
) *DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentService{
		kind:        kind,
		prefix:      prefix,
		docRepo:     docRepo,
		productRepo: productRepo,
		log:         log.With(zap.String("kind", kind.String())),
		metrics:     m,
	}
}

// Kind returns the document kind the service manages
func (s *DocumentService) Kind() enum.DocumentKind {
	return s.kind
}

// TaxInput is one tax of a line item. Rate is a fraction (0.16 for 16%).
type TaxInput struct {
	Name string
	Rate float64
}

// LineItemInput represents a line item input
type LineItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Description *string
	Quantity    float64
	UnitPrice   float64
	Taxes       []TaxInput
}

// DocumentInput is the full content of an invoice or receipt.
// Status and DueDate apply to invoices, PaymentMethod to receipts. A nil Status
// means draft on create and the stored status on update.
type DocumentInput struct {
	Number        string
	IssuerName    string
	IssuerAddress *string
	IssuerTaxID   *string
	ClientName    *string
	ClientAddress *string
	ClientTaxID   *string
	IssueDate     time.Time
	DueDate       *time.Time
	Status        *enum.InvoiceStatus
	PaymentMethod enum.PaymentMethod
	Notes         *string
	Items         []LineItemInput
}

// Create validates and calculates the document, then stores it with all items and taxes
func (s *DocumentService) Create(ctx context.Context, input *DocumentInput) (*entity.Document, error) {
	doc, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, s.writeError(ctx, err, doc.Number)
	}

	s.metrics.DocumentWritten(s.kind.String(), metrics.OperationCreate)
	logger.WithContext(ctx, s.log).Info("document created",
		zap.String("id", doc.ID.String()),
		zap.String("number", doc.Number),
		zap.Float64("total", doc.Total),
	)
	return doc, nil
}

// Update replaces the header and every item of an existing document
func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, input *DocumentInput) (*entity.Document, error) {
	doc, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	doc.ID = id

	keepStatus := s.kind == enum.DocumentKindInvoice && input.Status == nil
	if err := s.docRepo.Update(ctx, doc, keepStatus); err != nil {
		return nil, s.writeError(ctx, err, doc.Number)
	}

	s.metrics.DocumentWritten(s.kind.String(), metrics.OperationUpdate)
	logger.WithContext(ctx, s.log).Info("document updated",
		zap.String("id", doc.ID.String()),
		zap.String("number", doc.Number),
		zap.Int("items", len(doc.Items)),
	)
	return doc, nil
}

// Delete removes a document together with its items and taxes
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.docRepo.Delete(ctx, s.kind, id); err != nil {
		return s.writeError(ctx, err, "")
	}

	s.metrics.DocumentWritten(s.kind.String(), metrics.OperationDelete)
	logger.WithContext(ctx, s.log).Info("document deleted", zap.String("id", id.String()))
	return nil
}

// GetByID retrieves a document with its ordered items and taxes.
// Amounts are recomputed from quantities, prices and rates before returning.
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, s.kind, id)
	if err != nil {
		return nil, s.readError(ctx, err)
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError(s.kind.Title())
	}

	stored := doc.Totals()
	if err := doc.Recalculate(); err != nil {
		// Stored rows that no longer validate are shown as stored.
		logger.WithContext(ctx, s.log).Warn("stored document failed recalculation",
			zap.String("id", id.String()),
			zap.Error(err),
		)
		return doc, nil
	}
	if fresh := doc.Totals(); math.Abs(fresh.Total-stored.Total) > totalsTolerance {
		logger.WithContext(ctx, s.log).Warn("stored totals out of date",
			zap.String("id", id.String()),
			zap.Float64("stored_total", stored.Total),
			zap.Float64("total", fresh.Total),
		)
	}
	return doc, nil
}

// ListInput represents optional filters for List
type ListInput struct {
	Search string
	Status *enum.InvoiceStatus
}

// List returns document headers ordered by creation time
func (s *DocumentService) List(ctx context.Context, input *ListInput) ([]entity.Document, error) {
	params := &repository.DocumentFilterParams{}
	if input != nil {
		params.Search = strings.TrimSpace(input.Search)
		if s.kind == enum.DocumentKindInvoice {
			params.Status = input.Status
		}
	}

	docs, err := s.docRepo.List(ctx, s.kind, params)
	if err != nil {
		return nil, s.readError(ctx, err)
	}
	return docs, nil
}

// UpdateStatus moves an invoice to the given status. Receipts carry no status.
func (s *DocumentService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) (*entity.Document, error) {
	if s.kind != enum.DocumentKindInvoice {
		return nil, apperror.NewFieldError("status", "is only available for invoices")
	}
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of draft, sent, paid, overdue")
	}

	if err := s.docRepo.UpdateStatus(ctx, s.kind, id, status); err != nil {
		return nil, s.writeError(ctx, err, "")
	}

	s.metrics.DocumentWritten(s.kind.String(), metrics.OperationStatus)
	logger.WithContext(ctx, s.log).Info("document status changed",
		zap.String("id", id.String()),
		zap.String("status", status.String()),
	)
	return s.GetByID(ctx, id)
}

// SuggestNumber proposes the number following the most recently created document.
// Two callers may receive the same suggestion; storing the second one fails with a conflict.
func (s *DocumentService) SuggestNumber(ctx context.Context) (string, error) {
	last, err := s.docRepo.LastNumber(ctx, s.kind)
	if err != nil {
		return "", s.readError(ctx, err)
	}
	return billing.NextNumber(s.prefix, last), nil
}

// build validates input and returns a calculated, unsaved document
func (s *DocumentService) build(ctx context.Context, input *DocumentInput) (*entity.Document, error) {
	if input == nil {
		return nil, apperror.NewBadRequestError("Request body is required")
	}

	fieldErrors := s.validateHeader(input)

	doc := &entity.Document{
		Kind:          s.kind,
		Number:        strings.TrimSpace(input.Number),
		IssuerName:    strings.TrimSpace(input.IssuerName),
		IssuerAddress: input.IssuerAddress,
		IssuerTaxID:   input.IssuerTaxID,
		ClientName:    input.ClientName,
		ClientAddress: input.ClientAddress,
		ClientTaxID:   input.ClientTaxID,
		IssueDate:     input.IssueDate,
		Notes:         input.Notes,
		Items:         make([]entity.LineItem, len(input.Items)),
	}
	if s.kind == enum.DocumentKindInvoice {
		doc.DueDate = input.DueDate
		if input.Status != nil {
			doc.Status = *input.Status
		}
	} else {
		doc.PaymentMethod = input.PaymentMethod
	}

	for i, in := range input.Items {
		item := entity.LineItem{
			Position:    i,
			ProductID:   in.ProductID,
			ProductName: strings.TrimSpace(in.ProductName),
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Taxes:       make([]entity.TaxLine, len(in.Taxes)),
		}
		for j, t := range in.Taxes {
			item.Taxes[j] = entity.TaxLine{Position: j, TaxName: strings.TrimSpace(t.Name), TaxRate: t.Rate}
			if t.Rate > 1 {
				logger.WithContext(ctx, s.log).Warn("tax rate exceeds 100%",
					zap.String("tax_name", t.Name),
					zap.Float64("tax_rate", t.Rate),
				)
			}
		}
		doc.Items[i] = item
	}

	productErrors, err := s.resolveProducts(ctx, doc.Items)
	if err != nil {
		return nil, err
	}
	fieldErrors = append(fieldErrors, productErrors...)

	if err := doc.Recalculate(); err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			return nil, err
		}
		fieldErrors = append(fieldErrors, appErr.Errors...)
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return doc, nil
}

func (s *DocumentService) validateHeader(input *DocumentInput) []apperror.FieldError {
	var errs []apperror.FieldError

	if strings.TrimSpace(input.Number) == "" {
		errs = append(errs, apperror.FieldError{Field: "number", Message: "is required"})
	}
	if strings.TrimSpace(input.IssuerName) == "" {
		errs = append(errs, apperror.FieldError{Field: "issuer_name", Message: "is required"})
	}
	if input.IssueDate.IsZero() {
		errs = append(errs, apperror.FieldError{Field: "issue_date", Message: "is required"})
	}

	switch s.kind {
	case enum.DocumentKindInvoice:
		if input.ClientName == nil || strings.TrimSpace(*input.ClientName) == "" {
			errs = append(errs, apperror.FieldError{Field: "client_name", Message: "is required"})
		}
		if input.Status != nil && !input.Status.IsValid() {
			errs = append(errs, apperror.FieldError{Field: "status", Message: "must be one of draft, sent, paid, overdue"})
		}
		if input.DueDate != nil && !input.IssueDate.IsZero() && input.DueDate.Before(input.IssueDate) {
			errs = append(errs, apperror.FieldError{Field: "due_date", Message: "must not be before issue_date"})
		}
	case enum.DocumentKindReceipt:
		if !input.PaymentMethod.IsValid() {
			errs = append(errs, apperror.FieldError{Field: "payment_method", Message: "must be one of cash, card, transfer"})
		}
	}
	return errs
}

// resolveProducts checks product references and fills blank snapshots from the catalog
func (s *DocumentService) resolveProducts(ctx context.Context, items []entity.LineItem) ([]apperror.FieldError, error) {
	if s.productRepo == nil {
		return nil, nil
	}

	var ids []uuid.UUID
	for _, item := range items {
		if item.ProductID != nil {
			ids = append(ids, *item.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, s.readError(ctx, err)
	}
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var errs []apperror.FieldError
	for i := range items {
		if items[i].ProductID == nil {
			continue
		}
		product, ok := byID[*items[i].ProductID]
		if !ok {
			errs = append(errs, apperror.FieldError{Field: fmt.Sprintf("items[%d].product_id", i), Message: "product not found"})
			continue
		}
		if items[i].ProductName == "" {
			items[i].ProductName = product.Name
		}
		if items[i].Description == nil {
			items[i].Description = product.Description
		}
	}
	return errs, nil
}

func (s *DocumentService) writeError(ctx context.Context, err error, number string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateNumber):
		s.metrics.DocumentConflict(s.kind.String())
		return apperror.NewRetryableConflictError(fmt.Sprintf("%s number %s already exists", s.kind.Title(), number))
	case errors.Is(err, repository.ErrDocumentNotFound):
		return apperror.NewNotFoundError(s.kind.Title())
	}
	logger.WithContext(ctx, s.log).Error("document write failed", zap.Error(err))
	return apperror.NewPersistenceError(err)
}

func (s *DocumentService) readError(ctx context.Context, err error) error {
	logger.WithContext(ctx, s.log).Error("document read failed", zap.Error(err))
	return apperror.NewPersistenceError(err)
}
