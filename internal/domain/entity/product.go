package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog entry that line items can be created from
type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:255;not null;index" json:"name"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	DefaultPrice float64   `gorm:"not null;default:0" json:"default_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Taxes []ProductTax `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"taxes"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// DefaultTax returns the tax flagged default, else the first tax, else nil
func (p *Product) DefaultTax() *ProductTax {
	for i := range p.Taxes {
		if p.Taxes[i].IsDefault {
			return &p.Taxes[i]
		}
	}
	if len(p.Taxes) > 0 {
		return &p.Taxes[0]
	}
	return nil
}

// ProductTax is a named tax configured on a product. TaxRate is a fraction.
type ProductTax struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	TaxName   string    `gorm:"size:100;not null" json:"tax_name"`
	TaxRate   float64   `gorm:"not null" json:"tax_rate"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
}

// BeforeCreate generates a UUID before creating a new product tax
func (t *ProductTax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductTax model
func (ProductTax) TableName() string {
	return "product_taxes"
}
