package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/id"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/stock"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProducts(t *testing.T) {
	path := writeFile(t, "products.csv",
		"sku,name,category,unit,case_pack,image_url\n"+
			"A100,\"Sushi Rice, Premium 5kg\",Dry Goods,kg,0,\n"+
			"B200,Nori Sheets,Dry Goods,,50,https://img.example/nori.jpg\n")

	products, err := LoadProducts(path)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "A100", products[0].SKU())
	assert.Equal(t, "Sushi Rice, Premium 5kg", products[0].Name)
	assert.Equal(t, "kg", products[0].Unit)
	assert.Nil(t, products[0].ImageURL)

	// Empty unit falls back to the constructor default.
	assert.Equal(t, "pc", products[1].Unit)
	assert.Equal(t, 50, products[1].CasePack)
	require.NotNil(t, products[1].ImageURL)
	assert.Equal(t, "https://img.example/nori.jpg", *products[1].ImageURL)
}

func TestLoadBins(t *testing.T) {
	path := writeFile(t, "bins.csv",
		"rack,bay,level\nG,1,1\nC,12,2\n")

	bins, err := LoadBins(path)
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, "G-01-1", bins[0].Code)
	assert.Equal(t, "C-12-2", bins[1].Code)
}

func TestLoadLevels(t *testing.T) {
	path := writeFile(t, "levels.csv",
		"sku,bin_code,quantity\nA100,G-01-1,12.5\nB200,C-04-1,30\n")

	levels, err := LoadLevels(path)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "12.5", levels[0].Quantity.String())
	assert.Equal(t, "C-04-1", levels[1].BinCode)
}

func TestTransactions_RoundTrip(t *testing.T) {
	txns := []ledger.Transaction{
		{ID: id.New(), SKU: "A100", Quantity: types.Qty(10), Type: ledger.TypeInbound, TimestampMs: 1720000000000, Location: "G-01-1"},
		{SKU: "B200", Quantity: types.MustQty("-2.5"), Type: ledger.TypeOutbound, TimestampMs: 1720000100000},
	}

	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, WriteTransactions(path, txns))

	got, err := LoadTransactions(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, txns[0].ID, got[0].ID)
	assert.Equal(t, "A100", got[0].SKU)
	assert.Equal(t, "10", got[0].Quantity.String())
	assert.Equal(t, ledger.TypeInbound, got[0].Type)
	assert.Equal(t, int64(1720000000000), got[0].TimestampMs)
	assert.Equal(t, "G-01-1", got[0].Location)

	// Nil ID writes as empty and reads back nil.
	assert.True(t, id.IsNil(got[1].ID))
	assert.Equal(t, "-2.5", got[1].Quantity.String())
}

func TestTransactions_RoundTripZstd(t *testing.T) {
	txns := []ledger.Transaction{
		{ID: id.New(), SKU: "A100", Quantity: types.Qty(7), Type: ledger.TypeInbound, TimestampMs: 1720000000000, Location: "G-01-1"},
	}

	path := filepath.Join(t.TempDir(), "transactions.csv.zst")
	require.NoError(t, WriteTransactions(path, txns))

	// The file on disk is compressed, not plain CSV.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "A100")

	got, err := LoadTransactions(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A100", got[0].SKU)
}

func TestLevels_RoundTripZstd(t *testing.T) {
	levels := []stock.BinStock{
		{SKU: "A100", BinCode: "G-01-1", Quantity: types.Qty(12)},
	}

	path := filepath.Join(t.TempDir(), "levels.csv.zst")
	require.NoError(t, WriteLevels(path, levels))

	got, err := LoadLevels(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12", got[0].Quantity.String())
}

func TestLoad_HeaderMismatch(t *testing.T) {
	path := writeFile(t, "levels.csv", "sku,bin,qty\nA100,G-01-1,1\n")
	_, err := LoadLevels(path)
	assert.ErrorContains(t, err, "header mismatch")
}

func TestLoad_ColumnCountMismatch(t *testing.T) {
	// encoding/csv itself rejects ragged rows.
	path := writeFile(t, "levels.csv", "sku,bin_code,quantity\nA100,G-01-1\n")
	_, err := LoadLevels(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadLevels(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
