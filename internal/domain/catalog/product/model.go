// Package product provides the product catalog.
package product

import (
	"context"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/entity"
)

// Product represents an item held in the warehouse.
// The Catalog Code holds the SKU.
type Product struct {
	entity.Catalog

	// Category groups products for filtering ("Trays", "Film", ...)
	Category string `json:"category"`

	// Unit is the stock-keeping unit of measure ("pc", "case", "kg")
	Unit string `json:"unit"`

	// CasePack is the number of pieces per case (0 = not case-packed)
	CasePack int `json:"casePack"`

	// ImageURL references the product photo shown by the UI
	ImageURL *string `json:"imageUrl,omitempty"`
}

// NewProduct creates a product with required fields.
func NewProduct(sku, name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(sku, name),
		Unit:    "pc",
	}
}

// SKU returns the product code.
func (p *Product) SKU() string {
	return p.Code
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if p.CasePack < 0 {
		return apperror.NewValidation("case pack cannot be negative").
			WithDetail("field", "casePack").
			WithDetail("value", p.CasePack)
	}
	return nil
}

// SearchFields returns the values the catalog search runs over.
func (p *Product) SearchFields() []any {
	return []any{p.Code, p.Name, p.Category}
}
