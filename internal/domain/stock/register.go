// Package stock provides the in-memory stock register: per-bin quantity
// levels maintained alongside the transaction log.
//
// The register mirrors the external inventory table and is the authoritative
// anchor for current balances. Out-of-band edits can make it drift from the
// log-derived sum; Divergence surfaces that drift instead of guessing which
// source is right.
package stock

import (
	"sort"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
)

// BinStock is the quantity of one product held in one bin.
type BinStock struct {
	SKU      string         `json:"sku"`
	BinCode  string         `json:"binCode"`
	Quantity types.Quantity `json:"quantity"`
}

type levelKey struct {
	sku string
	bin string
}

// Register holds per-bin stock levels.
type Register struct {
	levels map[levelKey]types.Quantity
}

// NewRegister creates an empty stock register.
func NewRegister() *Register {
	return &Register{
		levels: make(map[levelKey]types.Quantity),
	}
}

// Load replaces levels with the given snapshot entries (additive for
// duplicate (sku, bin) pairs).
func (r *Register) Load(levels []BinStock) error {
	for _, lv := range levels {
		if lv.SKU == "" || lv.BinCode == "" {
			return apperror.NewValidation("stock level requires sku and bin code").
				WithDetail("sku", lv.SKU).
				WithDetail("binCode", lv.BinCode)
		}
		r.Add(lv.SKU, lv.BinCode, lv.Quantity)
	}
	return nil
}

// Add applies a signed delta to the (sku, bin) level.
func (r *Register) Add(sku, binCode string, delta types.Quantity) {
	key := levelKey{sku: sku, bin: binCode}
	current, ok := r.levels[key]
	if !ok {
		current = types.ZeroQty()
	}
	r.levels[key] = current.Add(delta)
}

// Quantity returns the level of one (sku, bin) pair.
func (r *Register) Quantity(sku, binCode string) types.Quantity {
	if q, ok := r.levels[levelKey{sku: sku, bin: binCode}]; ok {
		return q
	}
	return types.ZeroQty()
}

// ProductAvailability returns the product total across all bins.
// This is the "current balance" anchor backward reconstruction starts from.
func (r *Register) ProductAvailability(sku string) types.Quantity {
	total := types.ZeroQty()
	for key, q := range r.levels {
		if key.sku == sku {
			total = total.Add(q)
		}
	}
	return total
}

// ProductBins returns the non-zero levels of a product sorted by bin code.
func (r *Register) ProductBins(sku string) []BinStock {
	var out []BinStock
	for key, q := range r.levels {
		if key.sku == sku && !q.IsZero() {
			out = append(out, BinStock{SKU: key.sku, BinCode: key.bin, Quantity: q})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BinCode < out[j].BinCode })
	return out
}

// BinContents returns the non-zero levels held in a bin sorted by SKU.
func (r *Register) BinContents(binCode string) []BinStock {
	var out []BinStock
	for key, q := range r.levels {
		if key.bin == binCode && !q.IsZero() {
			out = append(out, BinStock{SKU: key.sku, BinCode: key.bin, Quantity: q})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// SKUs returns every product present in the register, sorted.
func (r *Register) SKUs() []string {
	seen := make(map[string]struct{})
	for key := range r.levels {
		seen[key.sku] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for sku := range seen {
		out = append(out, sku)
	}
	sort.Strings(out)
	return out
}

// Divergence compares the register total of a product against the
// log-derived sum. diverged is true when the two disagree; delta is
// register minus log.
func (r *Register) Divergence(sku string, log *ledger.Log) (delta types.Quantity, diverged bool) {
	registered := r.ProductAvailability(sku)
	derived := log.SumFor(sku)
	delta = registered.Sub(derived)
	return delta, !delta.IsZero()
}
