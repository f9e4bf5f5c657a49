package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	domainRepo "github.com/sangkips/invoicely-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domainRepo.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := numberTaken(tx, doc.Kind, doc.Number, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return domainRepo.ErrDuplicateNumber
		}

		if err := tx.Create(doc).Error; err != nil {
			if isUniqueViolation(err) {
				return domainRepo.ErrDuplicateNumber
			}
			return err
		}
		return nil
	})
}

// snapshotRead gives every query of a read one consistent view of the data
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// Update replaces the item graph with delete-all-then-insert-all inside one transaction
func (r *documentRepository) Update(ctx context.Context, doc *entity.Document, keepStatus bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.Document
		err := tx.Select("id", "created_at", "status").
			Where("id = ? AND kind = ?", doc.ID, doc.Kind).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainRepo.ErrDocumentNotFound
		}
		if err != nil {
			return err
		}

		taken, err := numberTaken(tx, doc.Kind, doc.Number, doc.ID)
		if err != nil {
			return err
		}
		if taken {
			return domainRepo.ErrDuplicateNumber
		}

		if err := deleteItems(tx, doc.ID); err != nil {
			return err
		}

		doc.CreatedAt = existing.CreatedAt
		if keepStatus {
			doc.Status = existing.Status
		}
		if err := tx.Omit(clause.Associations).Save(doc).Error; err != nil {
			if isUniqueViolation(err) {
				return domainRepo.ErrDuplicateNumber
			}
			return err
		}

		for i := range doc.Items {
			doc.Items[i].DocumentID = doc.ID
		}
		if len(doc.Items) > 0 {
			if err := tx.Create(&doc.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *documentRepository) UpdateStatus(ctx context.Context, kind enum.DocumentKind, id uuid.UUID, status enum.InvoiceStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ? AND kind = ?", id, kind).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, kind enum.DocumentKind, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Document{}).Where("id = ? AND kind = ?", id, kind).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainRepo.ErrDocumentNotFound
		}

		if err := deleteItems(tx, id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Document{}).Error
	})
}

// GetByID loads the header, items and taxes in one read transaction so a
// concurrent Update is seen entirely or not at all.
func (r *documentRepository) GetByID(ctx context.Context, kind enum.DocumentKind, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("Items", orderByPosition).
			Preload("Items.Taxes", orderByPosition).
			Where("kind = ?", kind).
			First(&doc, "id = ?", id).Error
	}, snapshotRead)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, kind enum.DocumentKind, params *domainRepo.DocumentFilterParams) ([]entity.Document, error) {
	query := r.db.WithContext(ctx).Model(&entity.Document{}).Where("kind = ?", kind)

	if params != nil {
		if params.Search != "" {
			pattern := likePattern(params.Search)
			query = query.Where("LOWER(number) LIKE ? OR LOWER(issuer_name) LIKE ? OR LOWER(client_name) LIKE ?",
				pattern, pattern, pattern)
		}
		if params.Status != nil {
			query = query.Where("status = ?", *params.Status)
		}
	}

	docs := []entity.Document{}
	err := query.Order("created_at ASC").Order("number ASC").Find(&docs).Error
	return docs, err
}

func (r *documentRepository) LastNumber(ctx context.Context, kind enum.DocumentKind) (*string, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Select("number").
		Where("kind = ?", kind).
		Order("created_at DESC").Order("LENGTH(number) DESC").Order("number DESC").
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Number, nil
}

func numberTaken(tx *gorm.DB, kind enum.DocumentKind, number string, exclude uuid.UUID) (bool, error) {
	var count int64
	query := tx.Model(&entity.Document{}).Where("kind = ? AND number = ?", kind, number)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// deleteItems removes the tax lines and line items owned by a document. The schema
// cascades as well; deleting explicitly keeps drivers without FK enforcement clean.
func deleteItems(tx *gorm.DB, documentID uuid.UUID) error {
	itemIDs := tx.Model(&entity.LineItem{}).Select("id").Where("document_id = ?", documentID)
	if err := tx.Where("line_item_id IN (?)", itemIDs).Delete(&entity.TaxLine{}).Error; err != nil {
		return err
	}
	return tx.Where("document_id = ?", documentID).Delete(&entity.LineItem{}).Error
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
