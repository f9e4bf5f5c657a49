package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
)

// DocumentRepository persists invoices and receipts together with their line items and tax lines.
// Every write is a single transaction covering the whole item graph.
type DocumentRepository interface {
	// Create inserts the document, its items and their taxes.
	// Returns ErrDuplicateNumber if the kind already has a document with that number.
	Create(ctx context.Context, doc *entity.Document) error
	// Update saves the header and replaces every item and tax of the document.
	// With keepStatus the stored status is left as is and copied onto doc.
	// Returns ErrDocumentNotFound or ErrDuplicateNumber.
	Update(ctx context.Context, doc *entity.Document, keepStatus bool) error
	// UpdateStatus changes only the status column. Returns ErrDocumentNotFound.
	UpdateStatus(ctx context.Context, kind enum.DocumentKind, id uuid.UUID, status enum.InvoiceStatus) error
	// Delete removes the document with its items and taxes. Returns ErrDocumentNotFound.
	Delete(ctx context.Context, kind enum.DocumentKind, id uuid.UUID) error
	// GetByID returns the document with ordered items and taxes, or nil if absent
	GetByID(ctx context.Context, kind enum.DocumentKind, id uuid.UUID) (*entity.Document, error)
	// List returns document headers of the kind ordered by creation time
	List(ctx context.Context, kind enum.DocumentKind, params *DocumentFilterParams) ([]entity.Document, error)
	// LastNumber returns the number of the most recently created document of the kind
	LastNumber(ctx context.Context, kind enum.DocumentKind) (*string, error)
}

// DataResetter wipes every catalog and document table in one transaction
type DataResetter interface {
	ResetAll(ctx context.Context) error
}

// DocumentFilterParams contains optional filters for document listings
type DocumentFilterParams struct {
	Search string
	Status *enum.InvoiceStatus
}
