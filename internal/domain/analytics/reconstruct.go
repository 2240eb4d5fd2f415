package analytics

import (
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
)

// Reconstruct computes one DailyBucket per calendar day from windowStart to
// windowEnd inclusive, ascending, anchored on the product's current balance.
// The returned opening quantity is the balance immediately before the
// window.
//
// Transactions with missing timestamps are skipped. MOVE and unknown type
// tags are stock-neutral and contribute nothing. Day boundaries follow loc.
func Reconstruct(current types.Quantity, txns []ledger.Transaction, windowStart, windowEnd time.Time, loc *time.Location) (days []DailyBucket, opening types.Quantity, err error) {
	start := dayFloor(windowStart, loc)
	end := dayFloor(windowEnd, loc)
	if start.After(end) {
		return nil, types.ZeroQty(), apperror.NewValidation("window start is after window end").
			WithDetail("from", start.Format("2006-01-02")).
			WithDetail("to", end.Format("2006-01-02"))
	}

	// First instant no longer inside the window. Everything from here to
	// "now" is already reflected in the current balance and must be undone
	// to recover the balance as of the end of windowEnd. The whole
	// unbounded future counts, not just days near the window.
	afterEnd := end.AddDate(0, 0, 1)

	endBalance := current
	for _, txn := range txns {
		when, ok := txn.Time(loc)
		if !ok || !txn.Type.MovesStock() {
			continue
		}
		if !when.Before(afterEnd) {
			// Undoing a signed delta is a plain subtraction: inbound
			// removes its quantity, outbound adds its magnitude back,
			// adjustments remove their signed value.
			endBalance = endBalance.Sub(txn.Quantity)
		}
	}

	// One zero-initialized bucket per day, ascending.
	n := daysBetween(start, end) + 1
	days = make([]DailyBucket, n)
	for i := range days {
		days[i] = DailyBucket{
			Date:    start.AddDate(0, 0, i),
			In:      types.ZeroQty(),
			Out:     types.ZeroQty(),
			Adj:     types.ZeroQty(),
			Balance: types.ZeroQty(),
		}
	}

	for _, txn := range txns {
		when, ok := txn.Time(loc)
		if !ok {
			continue
		}
		day := dayFloor(when, loc)
		if day.Before(start) || day.After(end) {
			continue
		}
		b := &days[daysBetween(start, day)]
		switch txn.Type {
		case ledger.TypeInbound:
			b.In = b.In.Add(txn.Quantity)
		case ledger.TypeOutbound:
			b.Out = b.Out.Add(txn.Quantity.Abs())
		case ledger.TypeAdjustment, ledger.TypeCount, ledger.TypeDelete:
			b.Adj = b.Adj.Add(txn.Quantity)
		default:
			// MOVE and unknown tags are inert.
		}
	}

	// Walk the days latest-first: assign each day's closing balance, then
	// roll the running balance back past that day's movement. What remains
	// after the earliest day is the window's opening stock.
	running := endBalance
	for i := len(days) - 1; i >= 0; i-- {
		days[i].Balance = running
		running = running.Sub(days[i].In).Add(days[i].Out).Sub(days[i].Adj)
	}

	return days, running, nil
}

// FlowTotals sums the inbound and outbound movement inside the window,
// independent of the daily reconstruction. Outbound is reported as a
// positive magnitude.
func FlowTotals(txns []ledger.Transaction, windowStart, windowEnd time.Time, loc *time.Location) (in, out types.Quantity) {
	start := dayFloor(windowStart, loc)
	afterEnd := dayFloor(windowEnd, loc).AddDate(0, 0, 1)

	in = types.ZeroQty()
	out = types.ZeroQty()
	for _, txn := range txns {
		when, ok := txn.Time(loc)
		if !ok || when.Before(start) || !when.Before(afterEnd) {
			continue
		}
		switch txn.Type {
		case ledger.TypeInbound:
			in = in.Add(txn.Quantity)
		case ledger.TypeOutbound:
			out = out.Add(txn.Quantity.Abs())
		}
	}
	return in, out
}

// dayFloor truncates t to midnight of its calendar day in loc.
func dayFloor(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b (both midnight-floored).
// Computed date-wise rather than by dividing durations, so DST shifts do
// not skew the count.
func daysBetween(a, b time.Time) int {
	days := 0
	for cur := a; cur.Before(b); cur = cur.AddDate(0, 0, 1) {
		days++
	}
	return days
}
