package seed

import (
	"context"
	"fmt"

	"github.com/sangkips/invoicely-api/internal/application/service"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/repository"
	"go.uber.org/zap"
)

// Counts sets how many rows of each kind a reseed creates
type Counts struct {
	Products int
	Invoices int
	Receipts int
}

// Result reports what a reseed created
type Result struct {
	Products int `json:"products"`
	Invoices int `json:"invoices"`
	Receipts int `json:"receipts"`
}

// Reseeder wipes all data and loads a fresh synthetic data set through the regular services
type Reseeder struct {
	resetter repository.DataResetter
	products *service.ProductService
	invoices *service.DocumentService
	receipts *service.DocumentService
	gen      *Generator
	counts   Counts
	log      *zap.Logger
}

// NewReseeder creates a reseeder
func NewReseeder(
	resetter repository.DataResetter,
	products *service.ProductService,
	invoices *service.DocumentService,
	receipts *service.DocumentService,
	gen *Generator,
	counts Counts,
	log *zap.Logger,
) *Reseeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reseeder{
		resetter: resetter,
		products: products,
		invoices: invoices,
		receipts: receipts,
		gen:      gen,
		counts:   counts,
		log:      log,
	}
}

// Run replaces every product, invoice and receipt
func (r *Reseeder) Run(ctx context.Context) (*Result, error) {
	if err := r.resetter.ResetAll(ctx); err != nil {
		return nil, fmt.Errorf("reset data: %w", err)
	}
	r.log.Info("cleared existing data")

	result := &Result{}
	created := make([]entity.Product, 0, r.counts.Products)
	for _, input := range r.gen.Products(r.counts.Products) {
		product, err := r.products.CreateProduct(ctx, &input)
		if err != nil {
			return result, fmt.Errorf("create product %q: %w", input.Name, err)
		}
		created = append(created, *product)
		result.Products++
	}

	for i := 0; i < r.counts.Invoices; i++ {
		if err := r.createDocument(ctx, r.invoices, r.gen.Invoice(created)); err != nil {
			return result, err
		}
		result.Invoices++
	}
	for i := 0; i < r.counts.Receipts; i++ {
		if err := r.createDocument(ctx, r.receipts, r.gen.Receipt(created)); err != nil {
			return result, err
		}
		result.Receipts++
	}

	r.log.Info("seeded demo data",
		zap.Int("products", result.Products),
		zap.Int("invoices", result.Invoices),
		zap.Int("receipts", result.Receipts),
	)
	return result, nil
}

func (r *Reseeder) createDocument(ctx context.Context, docs *service.DocumentService, input *service.DocumentInput) error {
	number, err := docs.SuggestNumber(ctx)
	if err != nil {
		return err
	}
	input.Number = number

	if _, err := docs.Create(ctx, input); err != nil {
		return fmt.Errorf("create %s %s: %w", docs.Kind(), number, err)
	}
	return nil
}
