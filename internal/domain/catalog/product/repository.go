package product

import (
	"context"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/search"
)

// Repository provides in-memory product storage and search.
type Repository struct {
	products []*Product
	bySKU    map[string]*Product
}

// NewRepository creates an empty product repository.
func NewRepository() *Repository {
	return &Repository{
		bySKU: make(map[string]*Product),
	}
}

// Load validates and adds products to the repository.
func (r *Repository) Load(ctx context.Context, products []*Product) error {
	for _, p := range products {
		if err := r.Add(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Add validates and stores a single product.
func (r *Repository) Add(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if _, exists := r.bySKU[p.Code]; exists {
		return apperror.NewDuplicate("product", "sku", p.Code)
	}
	r.products = append(r.products, p)
	r.bySKU[p.Code] = p
	return nil
}

// BySKU returns the product with the given SKU.
func (r *Repository) BySKU(sku string) (*Product, error) {
	if p, ok := r.bySKU[sku]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", sku)
}

// All returns the products in load order.
func (r *Repository) All() []*Product {
	out := make([]*Product, len(r.products))
	copy(out, r.products)
	return out
}

// Search returns products matching every term of the query across SKU, name
// and category, in load order. limit <= 0 means unlimited.
func (r *Repository) Search(query string, limit int) []*Product {
	var out []*Product
	for _, p := range r.products {
		if p.DeletionMark {
			continue
		}
		if search.Matches(query, p.SearchFields()...) {
			out = append(out, p)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}
