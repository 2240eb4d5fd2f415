package analytics

import (
	"fmt"
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
)

// Aggregate rolls an ascending daily series up into monthly, quarterly or
// yearly buckets. opening is the balance immediately before the first day;
// it seeds the opening/closing chain: every bucket's closing balance equals
// the next bucket's opening balance.
//
// The daily series needs no aggregation (the service returns it untouched),
// so daily, like any other value outside the three period granularities, is
// a caller contract violation here.
func Aggregate(days []DailyBucket, opening types.Quantity, g Granularity) ([]PeriodBucket, error) {
	switch g {
	case GranularityMonthly, GranularityQuarterly, GranularityYearly:
	default:
		return nil, apperror.NewInvalidInput("unsupported aggregation granularity").
			WithDetail("granularity", string(g))
	}

	// Days with the same key are contiguous because the input is
	// date-ordered, so a single pass with a running key suffices.
	var buckets []PeriodBucket
	currentKey := ""
	for _, day := range days {
		key := periodKey(day.Date, g)
		if key != currentKey {
			buckets = append(buckets, PeriodBucket{
				Key:     key,
				Start:   day.Date,
				In:      types.ZeroQty(),
				Out:     types.ZeroQty(),
				Adj:     types.ZeroQty(),
				Opening: types.ZeroQty(),
				Closing: types.ZeroQty(),
			})
			currentKey = key
		}
		b := &buckets[len(buckets)-1]
		b.In = b.In.Add(day.In)
		b.Out = b.Out.Add(day.Out)
		b.Adj = b.Adj.Add(day.Adj)
		b.Closing = day.Balance
	}

	// Chain opening balances chronologically.
	carry := opening
	for i := range buckets {
		buckets[i].Opening = carry
		carry = buckets[i].Closing
	}

	return buckets, nil
}

// periodKey labels the period containing the given day.
func periodKey(day time.Time, g Granularity) string {
	switch g {
	case GranularityQuarterly:
		quarter := (int(day.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", day.Year(), quarter)
	case GranularityYearly:
		return day.Format("2006")
	default:
		return day.Format("2006-01")
	}
}
