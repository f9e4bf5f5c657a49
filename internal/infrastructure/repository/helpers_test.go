package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func newDocument(kind enum.DocumentKind, number string, issued time.Time, items ...entity.LineItem) *entity.Document {
	doc := &entity.Document{
		Kind:       kind,
		Number:     number,
		IssuerName: "Acme Ltd",
		IssueDate:  issued,
		Items:      items,
	}
	for i := range doc.Items {
		doc.Items[i].Position = i
	}
	if err := doc.Recalculate(); err != nil {
		panic(err)
	}
	return doc
}

func newItem(name string, qty, price float64, taxes ...entity.TaxLine) entity.LineItem {
	for i := range taxes {
		taxes[i].Position = i
	}
	return entity.LineItem{ProductName: name, Quantity: qty, UnitPrice: price, Taxes: taxes}
}

func vat(rate float64) entity.TaxLine {
	return entity.TaxLine{TaxName: "VAT", TaxRate: rate}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
