package repository

import (
	"context"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	domainRepo "github.com/sangkips/invoicely-api/internal/domain/repository"
	"gorm.io/gorm"
)

type dataResetter struct {
	db *gorm.DB
}

// NewDataResetter creates a resetter that empties the catalog and document tables
func NewDataResetter(db *gorm.DB) domainRepo.DataResetter {
	return &dataResetter{db: db}
}

// ResetAll deletes children before parents so it works with or without FK enforcement
func (r *dataResetter) ResetAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&entity.TaxLine{},
			&entity.LineItem{},
			&entity.Document{},
			&entity.ProductTax{},
			&entity.Product{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
