// Package dataset reads and writes the warehouse data files: CSV with a
// header row, optionally zstd-compressed. A ".zst" suffix on the path
// switches compression on transparently for both directions.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/id"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/location"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/product"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/stock"
)

var (
	productHeader     = []string{"sku", "name", "category", "unit", "case_pack", "image_url"}
	binHeader         = []string{"rack", "bay", "level"}
	levelHeader       = []string{"sku", "bin_code", "quantity"}
	transactionHeader = []string{"id", "sku", "quantity", "type", "timestamp_ms", "location"}
)

// LoadProducts reads the product catalog file.
func LoadProducts(path string) ([]*product.Product, error) {
	records, err := readAll(path, productHeader)
	if err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(records))
	for i, rec := range records {
		p := product.NewProduct(rec[0], rec[1])
		p.Category = rec[2]
		if rec[3] != "" {
			p.Unit = rec[3]
		}
		if rec[4] != "" {
			casePack, err := strconv.Atoi(rec[4])
			if err != nil {
				return nil, fmt.Errorf("products row %d: case_pack: %w", i+2, err)
			}
			p.CasePack = casePack
		}
		if rec[5] != "" {
			url := rec[5]
			p.ImageURL = &url
		}
		products = append(products, p)
	}
	return products, nil
}

// LoadBins reads the bin catalog file.
func LoadBins(path string) ([]*location.Bin, error) {
	records, err := readAll(path, binHeader)
	if err != nil {
		return nil, err
	}

	bins := make([]*location.Bin, 0, len(records))
	for i, rec := range records {
		bay, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("bins row %d: bay: %w", i+2, err)
		}
		bins = append(bins, location.NewBin(rec[0], bay, rec[2]))
	}
	return bins, nil
}

// LoadLevels reads the current per-bin stock levels.
func LoadLevels(path string) ([]stock.BinStock, error) {
	records, err := readAll(path, levelHeader)
	if err != nil {
		return nil, err
	}

	levels := make([]stock.BinStock, 0, len(records))
	for i, rec := range records {
		qty, err := types.QtyFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("levels row %d: quantity: %w", i+2, err)
		}
		levels = append(levels, stock.BinStock{
			SKU:      rec[0],
			BinCode:  rec[1],
			Quantity: qty,
		})
	}
	return levels, nil
}

// LoadTransactions reads the transaction log file. The id column may be
// empty; the log assigns one on load.
func LoadTransactions(path string) ([]ledger.Transaction, error) {
	records, err := readAll(path, transactionHeader)
	if err != nil {
		return nil, err
	}

	txns := make([]ledger.Transaction, 0, len(records))
	for i, rec := range records {
		var txn ledger.Transaction

		if rec[0] != "" {
			txnID, err := id.Parse(rec[0])
			if err != nil {
				return nil, fmt.Errorf("transactions row %d: id: %w", i+2, err)
			}
			txn.ID = txnID
		}
		txn.SKU = rec[1]

		qty, err := types.QtyFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: quantity: %w", i+2, err)
		}
		txn.Quantity = qty
		txn.Type = ledger.Type(rec[3])

		if rec[4] != "" {
			ts, err := strconv.ParseInt(rec[4], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("transactions row %d: timestamp_ms: %w", i+2, err)
			}
			txn.TimestampMs = ts
		}
		txn.Location = rec[5]

		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteProducts writes the product catalog file.
func WriteProducts(path string, products []*product.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		imageURL := ""
		if p.ImageURL != nil {
			imageURL = *p.ImageURL
		}
		rows = append(rows, []string{
			p.SKU(), p.Name, p.Category, p.Unit,
			strconv.Itoa(p.CasePack), imageURL,
		})
	}
	return writeAll(path, productHeader, rows)
}

// WriteBins writes the bin catalog file.
func WriteBins(path string, bins []*location.Bin) error {
	rows := make([][]string, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, []string{b.Rack, strconv.Itoa(b.Bay), b.Level})
	}
	return writeAll(path, binHeader, rows)
}

// WriteTransactions writes the transaction log file.
func WriteTransactions(path string, txns []ledger.Transaction) error {
	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		idField := ""
		if !id.IsNil(txn.ID) {
			idField = txn.ID.String()
		}
		rows = append(rows, []string{
			idField,
			txn.SKU,
			txn.Quantity.String(),
			string(txn.Type),
			strconv.FormatInt(txn.TimestampMs, 10),
			txn.Location,
		})
	}
	return writeAll(path, transactionHeader, rows)
}

// WriteLevels writes the per-bin stock level file.
func WriteLevels(path string, levels []stock.BinStock) error {
	rows := make([][]string, 0, len(levels))
	for _, lvl := range levels {
		rows = append(rows, []string{lvl.SKU, lvl.BinCode, lvl.Quantity.String()})
	}
	return writeAll(path, levelHeader, rows)
}

// readAll opens the file, validates the header and returns the data rows.
func readAll(path string, header []string) ([][]string, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	if !headerMatches(records[0], header) {
		return nil, fmt.Errorf("%s: header mismatch, expected %v, got %v", path, header, records[0])
	}
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", path, i+2, len(header), len(rec))
		}
	}
	return records[1:], nil
}

func writeAll(path string, header []string, rows [][]string) error {
	w, err := createWriter(path)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(strings.ToLower(got[i])) != want[i] {
			return false
		}
	}
	return true
}

// openReader opens path for reading, decompressing when the name ends in
// ".zst".
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open zstd %s: %w", path, err)
	}
	return &zstReader{dec: dec, file: f}, nil
}

// createWriter creates path for writing, compressing when the name ends in
// ".zst".
func createWriter(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create zstd %s: %w", path, err)
	}
	return &zstWriter{enc: enc, file: f}, nil
}

type zstReader struct {
	dec  *zstd.Decoder
	file *os.File
}

func (r *zstReader) Read(p []byte) (int, error) { return r.dec.Read(p) }

func (r *zstReader) Close() error {
	r.dec.Close()
	return r.file.Close()
}

type zstWriter struct {
	enc  *zstd.Encoder
	file *os.File
}

func (w *zstWriter) Write(p []byte) (int, error) { return w.enc.Write(p) }

func (w *zstWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
