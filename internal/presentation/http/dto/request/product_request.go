package request

// ProductTaxRequest is one tax configured on a product. The rate is a percentage.
type ProductTaxRequest struct {
	TaxName        string  `json:"tax_name" validate:"required,max=100"`
	TaxRatePercent float64 `json:"tax_rate_percent" validate:"gte=0"`
	IsDefault      bool    `json:"is_default"`
}

// ProductRequest represents a product create or update request
type ProductRequest struct {
	Name         string              `json:"name" validate:"required,max=255"`
	Description  *string             `json:"description"`
	DefaultPrice float64             `json:"default_price" validate:"gte=0"`
	Taxes        []ProductTaxRequest `json:"taxes" validate:"omitempty,dive"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
