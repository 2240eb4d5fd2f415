// Package analytics derives historical stock series from the transaction
// log and the current register balance.
//
// Historical balances cannot be replayed forward, because the log may be
// incomplete and the register can be edited out of band. The only trusted
// anchor is the current balance, so the reconstructor works backward from
// "now", undoing movements day by day.
package analytics

import (
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
)

// Granularity selects the bucket size of a history report.
type Granularity string

const (
	GranularityDaily     Granularity = "daily"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

// Valid reports whether g belongs to the closed granularity set.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDaily, GranularityMonthly, GranularityQuarterly, GranularityYearly:
		return true
	}
	return false
}

// Window is an inclusive date range. Only the calendar date of From/To is
// significant; times are normalized to midnight in the report location.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DailyBucket is the movement and closing balance of one calendar day.
type DailyBucket struct {
	// Date is midnight of the day in the report location
	Date time.Time `json:"date"`

	// In is the inbound total (positive)
	In types.Quantity `json:"in"`

	// Out is the outbound total (stored as absolute magnitude)
	Out types.Quantity `json:"out"`

	// Adj is the net signed adjustment (ADJUSTMENT/COUNT/DELETE)
	Adj types.Quantity `json:"adj"`

	// Balance is the stock level at the end of the day
	Balance types.Quantity `json:"balance"`
}

// PeriodBucket aggregates a contiguous run of daily buckets.
type PeriodBucket struct {
	// Key labels the period: "2024-07", "2024-Q3", or "2024"
	Key string `json:"key"`

	// Start is the first covered day
	Start time.Time `json:"start"`

	In  types.Quantity `json:"in"`
	Out types.Quantity `json:"out"`
	Adj types.Quantity `json:"adj"`

	// Opening is the balance carried in from the preceding period
	Opening types.Quantity `json:"opening"`

	// Closing is the balance at the last covered day
	Closing types.Quantity `json:"closing"`
}

// ItemHistoryReport is the full per-product history report.
type ItemHistoryReport struct {
	SKU         string      `json:"sku"`
	Window      Window      `json:"window"`
	Granularity Granularity `json:"granularity"`

	// OpeningStock is the balance immediately before the window
	OpeningStock types.Quantity `json:"openingStock"`

	// CurrentBalance is the register anchor the reconstruction started from
	CurrentBalance types.Quantity `json:"currentBalance"`

	// Days is populated at daily granularity, Periods otherwise
	Days    []DailyBucket  `json:"days,omitempty"`
	Periods []PeriodBucket `json:"periods,omitempty"`

	// Window flow totals, summed over the raw transactions
	TotalInbound  types.Quantity `json:"totalInbound"`
	TotalOutbound types.Quantity `json:"totalOutbound"`
}
