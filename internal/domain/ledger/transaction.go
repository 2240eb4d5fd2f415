// Package ledger provides the append-only stock transaction log.
//
// Transactions are immutable historical facts. The current stock level of a
// product is the sum of its transaction deltas, which may drift from the
// externally maintained per-bin inventory (see stock.Register); the two are
// reconciled by the analytics service.
package ledger

import (
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/id"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
)

// Type tags a stock transaction. The set is closed but tolerant: records
// carrying tags outside it are kept in the journal and ignored by stock math.
type Type string

const (
	TypeInbound    Type = "INBOUND"
	TypeOutbound   Type = "OUTBOUND"
	TypeMove       Type = "MOVE"
	TypeAdjustment Type = "ADJUSTMENT"
	TypeDelete     Type = "DELETE"
	TypeCount      Type = "COUNT"
)

// Valid reports whether t belongs to the closed type set.
func (t Type) Valid() bool {
	switch t {
	case TypeInbound, TypeOutbound, TypeMove, TypeAdjustment, TypeDelete, TypeCount:
		return true
	}
	return false
}

// MovesStock reports whether the type changes a product's total stock.
// MOVE is a bin-to-bin transfer and is stock-neutral; unknown tags are
// treated as inert.
func (t Type) MovesStock() bool {
	switch t {
	case TypeInbound, TypeOutbound, TypeAdjustment, TypeDelete, TypeCount:
		return true
	}
	return false
}

// Transaction is one immutable entry of the stock log.
type Transaction struct {
	// ID identifies the entry (UUIDv7, time-ordered)
	ID id.ID `json:"id"`

	// SKU is the product identifier
	SKU string `json:"sku"`

	// Quantity is the signed stock delta: positive for inbound,
	// negative magnitude for outbound, signed for adjustments
	Quantity types.Quantity `json:"quantity"`

	// Type tags the movement kind
	Type Type `json:"type"`

	// TimestampMs is the event time in epoch milliseconds; values <= 0
	// mean the timestamp is missing and the entry is excluded from
	// balance math
	TimestampMs int64 `json:"timestampMs"`

	// Location is a free-text location annotation ("G-01-1",
	// "G-01-1 > A-02-3" for moves, supplier dock notes, ...)
	Location string `json:"location,omitempty"`
}

// Time resolves the event time in the given calendar location.
// ok is false when the timestamp is missing.
func (t Transaction) Time(loc *time.Location) (time.Time, bool) {
	if t.TimestampMs <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(t.TimestampMs).In(loc), true
}
