package ledger

import (
	"sort"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/id"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
)

// Log is the in-memory append-only transaction log.
type Log struct {
	txns []Transaction
}

// NewLog creates an empty transaction log.
func NewLog() *Log {
	return &Log{}
}

// Append validates and records a transaction, assigning an ID when missing.
// Unknown type tags and missing timestamps are tolerated (data-quality
// tolerance over strict validation); only a missing SKU is rejected.
func (l *Log) Append(txn Transaction) error {
	if txn.SKU == "" {
		return apperror.NewValidation("transaction sku is required").
			WithDetail("field", "sku")
	}
	if id.IsNil(txn.ID) {
		txn.ID = id.New()
	}
	l.txns = append(l.txns, txn)
	return nil
}

// Load appends a batch of transactions.
func (l *Log) Load(txns []Transaction) error {
	for _, txn := range txns {
		if err := l.Append(txn); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of recorded transactions.
func (l *Log) Len() int {
	return len(l.txns)
}

// All returns a copy of the full log in append order.
func (l *Log) All() []Transaction {
	out := make([]Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// History returns the transactions of a product sorted ascending by
// timestamp. Entries with missing timestamps sort first; the sort is stable
// so same-millisecond entries keep append order.
func (l *Log) History(sku string) []Transaction {
	var out []Transaction
	for _, txn := range l.txns {
		if txn.SKU == sku {
			out = append(out, txn)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimestampMs < out[j].TimestampMs
	})
	return out
}

// SumFor returns the log-derived stock total of a product: the sum of
// signed deltas of every stock-moving transaction.
func (l *Log) SumFor(sku string) types.Quantity {
	total := types.ZeroQty()
	for _, txn := range l.txns {
		if txn.SKU == sku && txn.Type.MovesStock() {
			total = total.Add(txn.Quantity)
		}
	}
	return total
}
