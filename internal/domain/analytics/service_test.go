package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/stock"
)

func fixedNow() time.Time {
	return time.Date(2024, 7, 15, 14, 30, 0, 0, time.UTC)
}

func newTestService(t *testing.T, txns []ledger.Transaction, levels []stock.BinStock, floor time.Time) *Service {
	t.Helper()
	log := ledger.NewLog()
	require.NoError(t, log.Load(txns))
	register := stock.NewRegister()
	require.NoError(t, register.Load(levels))
	return NewService(log, register, Options{
		HistoryFloor: floor,
		Location:     time.UTC,
		Now:          fixedNow,
	})
}

func TestItemHistory_DailyIsIdentity(t *testing.T) {
	txns := []ledger.Transaction{
		{SKU: "A100", Quantity: types.Qty(5), Type: ledger.TypeInbound, TimestampMs: at(2024, 7, 12, 10, 0)},
		{SKU: "A100", Quantity: types.Qty(-2), Type: ledger.TypeOutbound, TimestampMs: at(2024, 7, 13, 10, 0)},
	}
	levels := []stock.BinStock{{SKU: "A100", BinCode: "A-01-1", Quantity: types.Qty(3)}}
	svc := newTestService(t, txns, levels, time.Time{})

	window := Window{From: day(2024, 7, 11), To: day(2024, 7, 14)}
	report, err := svc.ItemHistory(context.Background(), "A100", window, GranularityDaily)
	require.NoError(t, err)

	// The daily report is exactly the reconstructed series.
	wantDays, wantOpening, err := Reconstruct(types.Qty(3), txns, window.From, window.To, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, wantDays, report.Days)
	assert.Empty(t, report.Periods)
	assert.Equal(t, wantOpening.String(), report.OpeningStock.String())
	assert.Equal(t, "3", report.CurrentBalance.String())
	assert.Equal(t, "5", report.TotalInbound.String())
	assert.Equal(t, "2", report.TotalOutbound.String())
}

func TestItemHistory_MonthlyAggregates(t *testing.T) {
	txns := []ledger.Transaction{
		{SKU: "A100", Quantity: types.Qty(10), Type: ledger.TypeInbound, TimestampMs: at(2024, 6, 28, 10, 0)},
		{SKU: "A100", Quantity: types.Qty(-4), Type: ledger.TypeOutbound, TimestampMs: at(2024, 7, 2, 10, 0)},
	}
	levels := []stock.BinStock{{SKU: "A100", BinCode: "A-01-1", Quantity: types.Qty(6)}}
	svc := newTestService(t, txns, levels, time.Time{})

	window := Window{From: day(2024, 6, 27), To: day(2024, 7, 3)}
	report, err := svc.ItemHistory(context.Background(), "A100", window, GranularityMonthly)
	require.NoError(t, err)

	require.Len(t, report.Periods, 2)
	assert.Empty(t, report.Days)
	assert.Equal(t, "2024-06", report.Periods[0].Key)
	assert.Equal(t, "2024-07", report.Periods[1].Key)
	assert.Equal(t, report.Periods[0].Closing.String(), report.Periods[1].Opening.String())
	assert.Equal(t, "6", report.Periods[1].Closing.String())
	assert.Equal(t, report.OpeningStock.String(), report.Periods[0].Opening.String())
}

func TestItemHistory_DefaultWindow(t *testing.T) {
	svc := newTestService(t, nil, nil, time.Time{})

	report, err := svc.ItemHistory(context.Background(), "A100", Window{}, GranularityDaily)
	require.NoError(t, err)

	// 30 days back from the fixed clock, inclusive on both ends.
	require.Len(t, report.Days, 31)
	assert.True(t, report.Days[0].Date.Equal(day(2024, 6, 15)))
	assert.True(t, report.Days[30].Date.Equal(day(2024, 7, 15)))
}

func TestItemHistory_FloorTruncatesWindow(t *testing.T) {
	svc := newTestService(t, nil, nil, day(2024, 7, 3))

	window := Window{From: day(2024, 7, 1), To: day(2024, 7, 5)}
	report, err := svc.ItemHistory(context.Background(), "A100", window, GranularityDaily)
	require.NoError(t, err)

	require.Len(t, report.Days, 3)
	assert.True(t, report.Days[0].Date.Equal(day(2024, 7, 3)))
}

func TestItemHistory_UnknownSKUIsConstantZero(t *testing.T) {
	svc := newTestService(t, nil, nil, time.Time{})

	window := Window{From: day(2024, 7, 1), To: day(2024, 7, 3)}
	report, err := svc.ItemHistory(context.Background(), "GHOST", window, GranularityDaily)
	require.NoError(t, err)

	require.Len(t, report.Days, 3)
	for _, d := range report.Days {
		assert.Equal(t, "0", d.Balance.String())
	}
	assert.Equal(t, "0", report.OpeningStock.String())
}

func TestItemHistory_Validation(t *testing.T) {
	svc := newTestService(t, nil, nil, time.Time{})
	ctx := context.Background()

	_, err := svc.ItemHistory(ctx, "", Window{}, GranularityDaily)
	assert.Error(t, err, "empty sku")

	_, err = svc.ItemHistory(ctx, "A100", Window{}, Granularity("weekly"))
	assert.Error(t, err, "unknown granularity")

	_, err = svc.ItemHistory(ctx, "A100", Window{From: day(2024, 7, 5), To: day(2024, 7, 1)}, GranularityDaily)
	assert.Error(t, err, "inverted window")
}

func TestItemHistory_RegisterAnchorWinsOverLog(t *testing.T) {
	// The register says 9 even though the log only accounts for 5. The
	// reconstruction must anchor on the register.
	txns := []ledger.Transaction{
		{SKU: "A100", Quantity: types.Qty(5), Type: ledger.TypeInbound, TimestampMs: at(2024, 7, 10, 10, 0)},
	}
	levels := []stock.BinStock{{SKU: "A100", BinCode: "A-01-1", Quantity: types.Qty(9)}}
	svc := newTestService(t, txns, levels, time.Time{})

	window := Window{From: day(2024, 7, 9), To: day(2024, 7, 11)}
	report, err := svc.ItemHistory(context.Background(), "A100", window, GranularityDaily)
	require.NoError(t, err)

	assert.Equal(t, "9", report.Days[2].Balance.String())
	assert.Equal(t, "4", report.OpeningStock.String())
}
