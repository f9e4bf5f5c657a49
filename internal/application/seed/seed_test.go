package seed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/application/service"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/internal/infrastructure/database"
	"github.com/sangkips/invoicely-api/internal/infrastructure/repository"
	"github.com/sangkips/invoicely-api/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(42).Products(5)
	b := NewGenerator(42).Products(5)
	assert.Equal(t, a, b)
}

func TestGeneratorProducts(t *testing.T) {
	products := NewGenerator(7).Products(15)
	require.Len(t, products, 15)

	for _, p := range products {
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.DefaultPrice, 500.0)
		require.NotEmpty(t, p.Taxes)
		assert.LessOrEqual(t, len(p.Taxes), 2)

		defaults := 0
		for _, tax := range p.Taxes {
			assert.Less(t, tax.Rate, 1.0, "rates are fractions")
			if tax.IsDefault {
				defaults++
			}
		}
		assert.Equal(t, 1, defaults)
	}
}

func TestGeneratorDocuments(t *testing.T) {
	gen := NewGenerator(3)
	gen.now = func() time.Time { return time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC) }

	inv := gen.Invoice(nil)
	require.NotNil(t, inv.DueDate)
	assert.False(t, inv.DueDate.Before(inv.IssueDate))
	require.NotNil(t, inv.Status)
	assert.True(t, inv.Status.IsValid())
	assert.NotEmpty(t, inv.Items)
	assert.False(t, inv.IssueDate.After(gen.now()))

	productID := uuid.New()
	rec := gen.Receipt([]entity.Product{{ID: productID, Name: "Widget", DefaultPrice: 12.5,
		Taxes: []entity.ProductTax{{TaxName: "VAT", TaxRate: 0.2}}}})
	assert.True(t, rec.PaymentMethod.IsValid())
	for _, item := range rec.Items {
		assert.Equal(t, &productID, item.ProductID)
		assert.Equal(t, "Widget", item.ProductName)
		assert.Equal(t, 12.5, item.UnitPrice)
		assert.Equal(t, []service.TaxInput{{Name: "VAT", Rate: 0.2}}, item.Taxes)
		assert.GreaterOrEqual(t, item.Quantity, 1.0)
	}
}

func newReseeder(t *testing.T, counts Counts) (*Reseeder, *gorm.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(database.Models()...))

	docRepo := repository.NewDocumentRepository(db)
	productRepo := repository.NewProductRepository(db)
	log := zap.NewNop()

	return NewReseeder(
		repository.NewDataResetter(db),
		service.NewProductService(productRepo, log),
		service.NewDocumentService(enum.DocumentKindInvoice, "INV", docRepo, productRepo, log, nil),
		service.NewDocumentService(enum.DocumentKindReceipt, "REC", docRepo, productRepo, log, nil),
		NewGenerator(11),
		counts,
		log,
	), db
}

func TestReseederReplacesData(t *testing.T) {
	r, db := newReseeder(t, Counts{Products: 6, Invoices: 4, Receipts: 3})
	ctx := context.Background()

	for run := 0; run < 2; run++ {
		result, err := r.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, &Result{Products: 6, Invoices: 4, Receipts: 3}, result)
	}

	var products, docs int64
	require.NoError(t, db.Model(&entity.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&entity.Document{}).Count(&docs).Error)
	assert.Equal(t, int64(6), products)
	assert.Equal(t, int64(7), docs)

	var numbers []string
	require.NoError(t, db.Model(&entity.Document{}).
		Where("kind = ?", enum.DocumentKindInvoice).
		Order("number").
		Pluck("number", &numbers).Error)
	assert.Equal(t, []string{"INV-001", "INV-002", "INV-003", "INV-004"}, numbers)

	var stored []entity.Document
	require.NoError(t, db.Preload("Items.Taxes").Find(&stored).Error)
	for i := range stored {
		want := stored[i].Total
		require.NoError(t, stored[i].Recalculate())
		assert.InDelta(t, want, stored[i].Total, 1e-6)
	}
}

type fakeRunner struct {
	calls    atomic.Int32
	failures int32
	block    chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) (*Result, error) {
	n := f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if n <= f.failures {
		return nil, errors.New("database unavailable")
	}
	return &Result{Products: 1}, nil
}

func TestSchedulerRetries(t *testing.T) {
	runner := &fakeRunner{failures: 2}
	m := metrics.New()
	s := NewScheduler(runner, SchedulerConfig{Interval: time.Hour, MaxRetries: 3, RetryDelay: time.Millisecond}, nil, m)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(3), runner.calls.Load())

	st := s.Status()
	assert.Equal(t, 1, st.RunCount)
	assert.Equal(t, 2, st.ErrorCount)
	require.NotNil(t, st.LastRun)
	assert.Equal(t, time.Hour, st.NextRun.Sub(*st.LastRun))
}

func TestSchedulerGivesUp(t *testing.T) {
	runner := &fakeRunner{failures: 10}
	s := NewScheduler(runner, SchedulerConfig{Interval: time.Hour, MaxRetries: 3, RetryDelay: time.Millisecond}, nil, nil)

	assert.Error(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(3), runner.calls.Load())
	assert.Zero(t, s.Status().RunCount)
	assert.Nil(t, s.Status().LastRun)
}

func TestSchedulerSkipsWhileRunning(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	s := NewScheduler(runner, SchedulerConfig{Interval: time.Hour, MaxRetries: 1}, nil, nil)

	done := make(chan error)
	go func() { done <- s.RunOnce(context.Background()) }()

	require.Eventually(t, func() bool { return s.Status().Seeding }, time.Second, time.Millisecond)
	assert.ErrorIs(t, s.RunOnce(context.Background()), ErrAlreadyRunning)

	close(runner.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestSchedulerStartRunsImmediatelyAndStops(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(runner, SchedulerConfig{Interval: time.Hour, MaxRetries: 1}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := s.Start(ctx)

	require.Eventually(t, func() bool { return s.Status().RunCount == 1 }, time.Second, time.Millisecond)
	assert.True(t, s.Status().Started)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.False(t, s.Status().Started)
}

func TestSchedulerStopsRetryingOnCancel(t *testing.T) {
	runner := &fakeRunner{failures: 10}
	s := NewScheduler(runner, SchedulerConfig{Interval: time.Hour, MaxRetries: 3, RetryDelay: time.Hour}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	assert.ErrorIs(t, s.RunOnce(ctx), context.Canceled)
	assert.Equal(t, int32(1), runner.calls.Load())
}
