package ledger

import (
	"sort"
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/search"
)

// JournalFilter defines filtering for the transaction journal.
type JournalFilter struct {
	// SKU restricts to one product (empty = all)
	SKU string

	// Types restricts to the given type tags (empty = all)
	Types []Type

	// Period (inclusive); entries with missing timestamps are excluded
	// when either bound is set
	From *time.Time
	To   *time.Time

	// Search applies the multi-term matcher over SKU, type and location
	Search string

	// Sorting by timestamp: "asc" or "desc" (default "desc")
	SortOrder string

	// Pagination
	Limit  int
	Offset int
}

// Journal is the transaction journal result.
type Journal struct {
	Items      []Transaction `json:"items"`
	TotalCount int           `json:"totalCount"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`

	// Summary by transaction type (first page only)
	Summary []TypeSummary `json:"summary,omitempty"`
}

// TypeSummary provides count and quantity totals per transaction type.
type TypeSummary struct {
	Type          Type           `json:"type"`
	Count         int            `json:"count"`
	TotalQuantity types.Quantity `json:"totalQuantity"`
}

// Journal returns the filtered, sorted, paginated transaction journal.
func (l *Log) Journal(filter JournalFilter) (*Journal, error) {
	switch filter.SortOrder {
	case "", "asc", "desc":
	default:
		return nil, apperror.NewInvalidInput("sort order must be asc or desc").
			WithDetail("sortOrder", filter.SortOrder)
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	matched := l.filterJournal(filter)

	asc := filter.SortOrder == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		if asc {
			return matched[i].TimestampMs < matched[j].TimestampMs
		}
		return matched[i].TimestampMs > matched[j].TimestampMs
	})

	journal := &Journal{
		TotalCount: len(matched),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}

	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	journal.Items = matched[start:end]

	if filter.Offset == 0 {
		journal.Summary = summarizeByType(matched)
	}

	return journal, nil
}

func (l *Log) filterJournal(filter JournalFilter) []Transaction {
	var out []Transaction
	for _, txn := range l.txns {
		if filter.SKU != "" && txn.SKU != filter.SKU {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, txn.Type) {
			continue
		}
		if filter.From != nil || filter.To != nil {
			if txn.TimestampMs <= 0 {
				continue
			}
			ts := time.UnixMilli(txn.TimestampMs)
			if filter.From != nil && ts.Before(*filter.From) {
				continue
			}
			if filter.To != nil && ts.After(*filter.To) {
				continue
			}
		}
		if !search.Matches(filter.Search, txn.SKU, string(txn.Type), txn.Location) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

func summarizeByType(txns []Transaction) []TypeSummary {
	totals := make(map[Type]*TypeSummary)
	var order []Type
	for _, txn := range txns {
		s, ok := totals[txn.Type]
		if !ok {
			s = &TypeSummary{Type: txn.Type, TotalQuantity: types.ZeroQty()}
			totals[txn.Type] = s
			order = append(order, txn.Type)
		}
		s.Count++
		s.TotalQuantity = s.TotalQuantity.Add(txn.Quantity)
	}

	out := make([]TypeSummary, 0, len(order))
	for _, t := range order {
		out = append(out, *totals[t])
	}
	return out
}

func containsType(types []Type, t Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
