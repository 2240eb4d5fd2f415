package location

import (
	"context"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
)

// Repository provides in-memory bin storage.
type Repository struct {
	bins    []*Bin
	byCode  map[string]*Bin
}

// NewRepository creates an empty bin repository.
func NewRepository() *Repository {
	return &Repository{
		byCode: make(map[string]*Bin),
	}
}

// Load validates and adds bins to the repository.
func (r *Repository) Load(ctx context.Context, bins []*Bin) error {
	for _, b := range bins {
		if err := r.Add(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// Add validates and stores a single bin.
func (r *Repository) Add(ctx context.Context, b *Bin) error {
	if err := b.Validate(ctx); err != nil {
		return err
	}
	if _, exists := r.byCode[b.Code]; exists {
		return apperror.NewDuplicate("bin", "code", b.Code)
	}
	r.bins = append(r.bins, b)
	r.byCode[b.Code] = b
	return nil
}

// ByCode returns the bin with the exact stored code.
func (r *Repository) ByCode(code string) (*Bin, error) {
	if b, ok := r.byCode[code]; ok {
		return b, nil
	}
	return nil, apperror.NewNotFound("bin", code)
}

// All returns the bins in load order.
func (r *Repository) All() []*Bin {
	out := make([]*Bin, len(r.bins))
	copy(out, r.bins)
	return out
}

// Filter applies the fuzzy bin-code matcher over the whole catalog.
func (r *Repository) Filter(term string) []*Bin {
	return FilterBins(r.bins, term)
}

// Resolve maps operator input to a single bin: an exact code match wins,
// otherwise the fuzzy matcher must identify exactly one bin.
func (r *Repository) Resolve(term string) (*Bin, error) {
	if b, ok := r.byCode[term]; ok {
		return b, nil
	}
	matches := FilterBins(r.bins, term)
	switch len(matches) {
	case 0:
		return nil, apperror.NewNotFound("bin", term)
	case 1:
		return matches[0], nil
	default:
		return nil, apperror.NewBusinessRule(
			apperror.CodeAmbiguousBin,
			"bin code matches more than one location",
		).WithDetail("term", term).WithDetail("matches", len(matches))
	}
}
