package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/internal/infrastructure/database"
	"github.com/sangkips/invoicely-api/internal/infrastructure/repository"
	"github.com/sangkips/invoicely-api/pkg/metrics"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	metrics  *metrics.Metrics
	invoices *DocumentService
	receipts *DocumentService
	products *ProductService
}

func newTestEnv(t *testing.T) *testEnv {
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

	m := metrics.New()
	docRepo := repository.NewDocumentRepository(db)
	productRepo := repository.NewProductRepository(db)
	log := zap.NewNop()

	return &testEnv{
		db:       db,
		metrics:  m,
		invoices: NewDocumentService(enum.DocumentKindInvoice, "INV", docRepo, productRepo, log, m),
		receipts: NewDocumentService(enum.DocumentKindReceipt, "REC", docRepo, productRepo, log, m),
		products: NewProductService(productRepo, log),
	}
}

func strPtr(s string) *string { return &s }

func invoiceInput(number string, items ...LineItemInput) *DocumentInput {
	return &DocumentInput{
		Number:     number,
		IssuerName: "Acme Ltd",
		ClientName: strPtr("Globex Corp"),
		IssueDate:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items:      items,
	}
}

func receiptInput(number string, items ...LineItemInput) *DocumentInput {
	return &DocumentInput{
		Number:        number,
		IssuerName:    "Acme Ltd",
		IssueDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod: enum.PaymentMethodCard,
		Items:         items,
	}
}

func item(name string, qty, price float64, taxes ...TaxInput) LineItemInput {
	return LineItemInput{ProductName: name, Quantity: qty, UnitPrice: price, Taxes: taxes}
}
