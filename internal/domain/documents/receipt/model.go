// Package receipt provides the InboundReceipt document: recorded arrival of
// goods into warehouse bins.
package receipt

import (
	"context"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/entity"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/id"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
)

// InboundReceipt records incoming goods from a supplier. Posting it writes
// one inbound transaction per line to the ledger and credits the target
// bins in the stock register.
type InboundReceipt struct {
	entity.Document

	// Supplier reference (free-form, suppliers are not a managed catalog)
	Supplier string `json:"supplier,omitempty"`

	// Supplier's own document reference
	SupplierDocNumber string `json:"supplierDocNumber,omitempty"`

	// Totals (calculated from lines)
	TotalQuantity types.Quantity `json:"totalQuantity"`
	TotalLines    int            `json:"totalLines"`

	// Table part: received goods
	Lines []Line `json:"lines"`
}

// Line represents one received product in the receipt.
type Line struct {
	LineID id.ID `json:"lineId"`
	LineNo int   `json:"lineNo"`

	// SKU of the received product
	SKU string `json:"sku"`

	Quantity types.Quantity `json:"quantity"`

	// BinCode names the target bin. Shorthand forms are accepted and
	// resolved to the canonical code at posting time.
	BinCode string `json:"binCode"`
}

// NewInboundReceipt creates a new unposted receipt.
func NewInboundReceipt(supplier string) *InboundReceipt {
	return &InboundReceipt{
		Document: entity.NewDocument(),
		Supplier: supplier,
		Lines:    make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (r *InboundReceipt) AddLine(sku string, quantity types.Quantity, binCode string) {
	r.Lines = append(r.Lines, Line{
		LineID:   id.New(),
		LineNo:   len(r.Lines) + 1,
		SKU:      sku,
		Quantity: quantity,
		BinCode:  binCode,
	})
	r.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (r *InboundReceipt) recalculateTotals() {
	r.TotalQuantity = types.ZeroQty()
	for _, line := range r.Lines {
		r.TotalQuantity = r.TotalQuantity.Add(line.Quantity)
	}
	r.TotalLines = len(r.Lines)
}

// Validate implements entity.Validatable.
func (r *InboundReceipt) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for _, line := range r.Lines {
		if line.SKU == "" {
			return apperror.NewValidation("sku is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", line.LineNo)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", line.LineNo)
		}
		if line.BinCode == "" {
			return apperror.NewValidation("bin is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", line.LineNo)
		}
	}

	return nil
}

// GenerateTransactions creates the ledger transactions posting this
// document produces: one inbound entry per line, stamped with the
// document's business date.
func (r *InboundReceipt) GenerateTransactions() []ledger.Transaction {
	txns := make([]ledger.Transaction, 0, len(r.Lines))
	for _, line := range r.Lines {
		txns = append(txns, ledger.Transaction{
			ID:          id.New(),
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			Type:        ledger.TypeInbound,
			TimestampMs: r.Date.UnixMilli(),
			Location:    line.BinCode,
		})
	}
	return txns
}
