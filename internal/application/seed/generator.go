// Package seed produces and loads synthetic demo data.
package seed

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sangkips/invoicely-api/internal/application/service"
	"github.com/sangkips/invoicely-api/internal/domain/billing"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
)

const issuerName = "Your Business Name LLC"

var catalog = map[string][]string{
	"Software Development": {
		"Custom Web Application Development",
		"Mobile App Development (iOS/Android)",
		"E-commerce Platform Setup",
		"API Development & Integration",
		"Database Design & Optimization",
		"Cloud Migration Services",
		"DevOps & CI/CD Setup",
		"Software Maintenance & Support",
		"Code Review & Audit",
		"Technical Consulting",
	},
	"Digital Marketing": {
		"SEO Optimization Package",
		"Google Ads Campaign Management",
		"Social Media Marketing",
		"Content Creation & Strategy",
		"Email Marketing Automation",
		"Brand Identity Design",
		"Website Analytics Setup",
		"Conversion Rate Optimization",
	},
	"Business Consulting": {
		"Business Strategy Consultation",
		"Market Research & Analysis",
		"Financial Planning & Forecasting",
		"Process Optimization",
		"Risk Assessment",
		"Compliance Audit",
		"Training & Development",
		"Project Management",
	},
	"Creative Services": {
		"Logo & Brand Design",
		"Website UI/UX Design",
		"Print Design Services",
		"Video Production",
		"Photography Services",
		"Copywriting & Content",
		"Animation Services",
		"Packaging Design",
	},
}

// categories fixes the iteration order of catalog
var categories = []string{"Software Development", "Digital Marketing", "Business Consulting", "Creative Services"}

var companies = []string{
	"TechCorp Solutions", "Digital Dynamics LLC", "Innovation Partners", "Global Systems Inc",
	"NextGen Technologies", "Smart Business Solutions", "Creative Minds Agency", "Data Driven Co",
	"Cloud First Enterprises", "Agile Development Group", "Strategic Consulting Firm", "Modern Marketing Hub",
	"Enterprise Solutions Ltd", "Digital Transformation Co", "Business Intelligence Corp", "Future Tech Ventures",
}

var addresses = []string{
	"123 Business Ave, New York, NY 10001",
	"456 Corporate Blvd, Los Angeles, CA 90210",
	"789 Enterprise St, Chicago, IL 60601",
	"321 Innovation Dr, Austin, TX 78701",
	"654 Technology Ln, Seattle, WA 98101",
	"987 Commerce Way, Miami, FL 33101",
	"147 Industry Rd, Boston, MA 02101",
	"258 Professional Ct, Denver, CO 80201",
}

type taxConfig struct {
	name    string
	percent float64
}

var taxConfigs = []taxConfig{
	{"VAT", 20},
	{"Sales Tax", 8.5},
	{"GST", 15},
	{"Service Tax", 12},
	{"State Tax", 6.5},
	{"City Tax", 2.5},
}

var invoiceNotes = []string{
	"Payment terms: Net 30 days",
	"Thank you for your business!",
	"Please remit payment by due date",
	"Contact us for any questions",
	"",
}

var receiptNotes = []string{
	"Thank you for your purchase!",
	"Items are non-refundable",
	"Warranty included",
	"Customer satisfaction guaranteed",
	"",
}

// Generator produces synthetic catalog and document inputs. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator. The same non-zero seed always yields the same data.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

// Products returns count product inputs, each with one or two taxes and exactly one default
func (g *Generator) Products(count int) []service.ProductInput {
	out := make([]service.ProductInput, 0, count)
	perCategory := int(math.Ceil(float64(count) / float64(len(categories))))

	for _, category := range categories {
		for i := 0; i < perCategory && len(out) < count; i++ {
			name := pick(g.rng, catalog[category])
			description := fmt.Sprintf("Professional %s service with comprehensive support and documentation.", strings.ToLower(name))

			taxes := g.distinctTaxes(1 + g.rng.IntN(2))
			inputs := make([]service.ProductTaxInput, len(taxes))
			for j, tax := range taxes {
				inputs[j] = service.ProductTaxInput{
					Name:      tax.name,
					Rate:      billing.RateFromPercent(tax.percent),
					IsDefault: j == 0,
				}
			}

			out = append(out, service.ProductInput{
				Name:         name,
				Description:  &description,
				DefaultPrice: g.money(500, 5000),
				Taxes:        inputs,
			})
		}
	}
	return out
}

// Invoice returns an invoice input drawing line items from products. Number is left empty.
func (g *Generator) Invoice(products []entity.Product) *service.DocumentInput {
	issued := g.pastDate(180)
	due := issued.AddDate(0, 0, 15+g.rng.IntN(46))
	status := enum.InvoiceStatus(g.rng.IntN(4))

	return &service.DocumentInput{
		IssuerName:    issuerName,
		IssuerAddress: strPtr(pick(g.rng, addresses)),
		IssuerTaxID:   strPtr(fmt.Sprintf("TAX-%06d", 100000+g.rng.IntN(900000))),
		ClientName:    strPtr(pick(g.rng, companies)),
		ClientAddress: strPtr(pick(g.rng, addresses)),
		ClientTaxID:   strPtr(fmt.Sprintf("CLI-%06d", 100000+g.rng.IntN(900000))),
		IssueDate:     issued,
		DueDate:       &due,
		Status:        &status,
		Notes:         optional(pick(g.rng, invoiceNotes)),
		Items:         g.items(products, 1+g.rng.IntN(5)),
	}
}

// Receipt returns a receipt input drawing line items from products. Number is left empty.
func (g *Generator) Receipt(products []entity.Product) *service.DocumentInput {
	return &service.DocumentInput{
		IssuerName:    issuerName,
		IssuerAddress: strPtr(pick(g.rng, addresses)),
		IssueDate:     g.pastDate(90),
		PaymentMethod: enum.PaymentMethod(g.rng.IntN(3)),
		Notes:         optional(pick(g.rng, receiptNotes)),
		Items:         g.items(products, 1+g.rng.IntN(3)),
	}
}

func (g *Generator) items(products []entity.Product, count int) []service.LineItemInput {
	items := make([]service.LineItemInput, count)
	for i := range items {
		// quantities carry one decimal
		qty := float64(10+g.rng.IntN(91)) / 10

		if len(products) == 0 {
			tax := pick(g.rng, taxConfigs)
			items[i] = service.LineItemInput{
				ProductName: pick(g.rng, catalog[pick(g.rng, categories)]),
				Quantity:    qty,
				UnitPrice:   g.money(200, 2000),
				Taxes:       []service.TaxInput{{Name: tax.name, Rate: billing.RateFromPercent(tax.percent)}},
			}
			continue
		}

		product := &products[g.rng.IntN(len(products))]
		id := product.ID
		taxes := make([]service.TaxInput, len(product.Taxes))
		for j, t := range product.Taxes {
			taxes[j] = service.TaxInput{Name: t.TaxName, Rate: t.TaxRate}
		}
		items[i] = service.LineItemInput{
			ProductID:   &id,
			ProductName: product.Name,
			Description: product.Description,
			Quantity:    qty,
			UnitPrice:   product.DefaultPrice,
			Taxes:       taxes,
		}
	}
	return items
}

func (g *Generator) distinctTaxes(n int) []taxConfig {
	perm := g.rng.Perm(len(taxConfigs))
	out := make([]taxConfig, n)
	for i := range out {
		out[i] = taxConfigs[perm[i]]
	}
	return out
}

// money returns a value in [lo, hi) with two decimals
func (g *Generator) money(lo, hi float64) float64 {
	return math.Round((lo+g.rng.Float64()*(hi-lo))*100) / 100
}

func (g *Generator) pastDate(daysBack int) time.Time {
	now := g.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -g.rng.IntN(daysBack+1))
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

func strPtr(s string) *string { return &s }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
