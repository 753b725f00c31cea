package model

import "time"

// Part represents a catalog part available through the storefront.
type Part struct {
	ID            string    `json:"-"`
	PartNumber    string    `json:"partNumber"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Manufacturer  string    `json:"manufacturer"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Featured      bool      `json:"featured"`
	Compatibility []string  `json:"compatibility,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// InStock returns true if the part has available inventory.
func (p *Part) InStock() bool {
	return p.StockQuantity > 0
}
