// Package main provides a CLI tool for generating a demo warehouse
// dataset: product and bin catalogs, a transaction history and the
// matching stock levels.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/id"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/location"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/product"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/stock"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/infrastructure/dataset"
	"github.com/catbe721-cyber/nexus-wms-sub001/pkg/logger"
)

func main() {
	dir := flag.String("dir", ".", "output directory")
	days := flag.Int("days", 90, "days of transaction history")
	seed := flag.Int64("seed", 42, "random seed")
	compress := flag.Bool("zst", false, "write zstd-compressed files")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(*dir, *days, *seed, *compress); err != nil {
		log.Fatalw("seed failed", "error", err)
	}
	log.Infow("demo dataset written", "dir", *dir, "days", *days)
}

func run(dir string, days int, seed int64, compress bool) error {
	rng := rand.New(rand.NewSource(seed))

	products := demoProducts()
	bins := demoBins()
	txns, levels := demoHistory(rng, products, bins, days)

	suffix := ""
	if compress {
		suffix = ".zst"
	}
	path := func(name string) string {
		return filepath.Join(dir, name+suffix)
	}

	if err := dataset.WriteProducts(path("products.csv"), products); err != nil {
		return err
	}
	if err := dataset.WriteBins(path("bins.csv"), bins); err != nil {
		return err
	}
	if err := dataset.WriteTransactions(path("transactions.csv"), txns); err != nil {
		return err
	}
	return dataset.WriteLevels(path("levels.csv"), levels)
}

func demoProducts() []*product.Product {
	specs := []struct {
		sku, name, category, unit string
		casePack                  int
	}{
		{"A100", "Sushi Rice Premium 5kg", "Dry Goods", "kg", 0},
		{"A101", "Sushi Rice Small 1kg", "Dry Goods", "kg", 0},
		{"B200", "Nori Sheets Gold", "Dry Goods", "pc", 50},
		{"B201", "Rice Vinegar 500ml", "Condiments", "pc", 12},
		{"C300", "Salmon Fillet Frozen", "Frozen", "kg", 0},
		{"C301", "Tuna Loin Frozen", "Frozen", "kg", 0},
		{"D400", "Tray Large Black", "Packaging", "pc", 200},
		{"D401", "Tray Small Clear", "Packaging", "pc", 400},
		{"D402", "Lid Film Roll", "Packaging", "pc", 6},
		{"E500", "Wasabi Paste 250g", "Condiments", "pc", 24},
	}

	products := make([]*product.Product, 0, len(specs))
	for _, s := range specs {
		p := product.NewProduct(s.sku, s.name)
		p.Category = s.category
		p.Unit = s.unit
		p.CasePack = s.casePack
		products = append(products, p)
	}
	return products
}

func demoBins() []*location.Bin {
	bins := make([]*location.Bin, 0, 48)
	for _, rack := range []string{"A", "C", "F", "G", "P", "R"} {
		for bay := 1; bay <= 4; bay++ {
			for _, level := range []string{"1", "2"} {
				bins = append(bins, location.NewBin(rack, bay, level))
			}
		}
	}
	return bins
}

// demoHistory simulates daily warehouse activity and returns the resulting
// transaction log together with stock levels that match it exactly, so the
// register and the log start out without divergence.
func demoHistory(rng *rand.Rand, products []*product.Product, bins []*location.Bin, days int) ([]ledger.Transaction, []stock.BinStock) {
	register := stock.NewRegister()
	var txns []ledger.Transaction

	// Each product lives in one fixed bin for the demo.
	homeBin := make(map[string]string, len(products))
	for i, p := range products {
		homeBin[p.SKU()] = bins[i%len(bins)].Code
	}

	start := time.Now().AddDate(0, 0, -days)
	record := func(sku string, qty types.Quantity, typ ledger.Type, when time.Time) {
		bin := homeBin[sku]
		txns = append(txns, ledger.Transaction{
			ID:          id.New(),
			SKU:         sku,
			Quantity:    qty,
			Type:        typ,
			TimestampMs: when.UnixMilli(),
			Location:    bin,
		})
		if typ.MovesStock() {
			register.Add(sku, bin, qty)
		}
	}

	// Opening delivery for every product.
	for _, p := range products {
		record(p.SKU(), types.Qty(int64(100+rng.Intn(200))), ledger.TypeInbound, start.Add(8*time.Hour))
	}

	for d := 1; d < days; d++ {
		day := start.AddDate(0, 0, d)
		for _, p := range products {
			sku := p.SKU()

			// Daily consumption.
			if have := register.ProductAvailability(sku); have.IsPositive() {
				use := int64(1 + rng.Intn(10))
				if limit := have.IntPart(); use > limit {
					use = limit
				}
				record(sku, types.Qty(-use), ledger.TypeOutbound, day.Add(time.Duration(9+rng.Intn(8))*time.Hour))
			}

			// Weekly-ish replenishment.
			if rng.Intn(7) == 0 {
				record(sku, types.Qty(int64(50+rng.Intn(100))), ledger.TypeInbound, day.Add(7*time.Hour))
			}

			// Occasional count correction.
			if rng.Intn(30) == 0 {
				record(sku, types.Qty(int64(rng.Intn(7)-3)), ledger.TypeCount, day.Add(18*time.Hour))
			}
		}
	}

	var levels []stock.BinStock
	for _, sku := range register.SKUs() {
		levels = append(levels, register.ProductBins(sku)...)
	}
	return txns, levels
}
