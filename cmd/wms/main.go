// Package main provides the warehouse CLI: catalog search, bin lookup,
// stock levels, the transaction journal and per-product history reports
// over CSV dataset files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/config"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/analytics"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/location"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/product"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/documents/receipt"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/stock"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/infrastructure/dataset"
	"github.com/catbe721-cyber/nexus-wms-sub001/pkg/logger"
)

const usage = `usage: wms <command> [flags]

commands:
  search    search the product catalog
  bins      find bins by full or shorthand code
  stock     show stock levels for a product or a bin
  journal   browse the transaction journal
  history   per-product stock history report
  receive   post an inbound receipt and update the dataset

run 'wms <command> -h' for command flags`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	ctx := logger.WithLogger(context.Background(), log)

	app := &app{cfg: cfg}

	var run func(ctx context.Context, args []string) error
	switch os.Args[1] {
	case "search":
		run = app.runSearch
	case "bins":
		run = app.runBins
	case "stock":
		run = app.runStock
	case "journal":
		run = app.runJournal
	case "history":
		run = app.runHistory
	case "receive":
		run = app.runReceive
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}

	if err := run(ctx, os.Args[2:]); err != nil {
		logger.Error(ctx, "command failed", "command", os.Args[1], "error", err)
		fmt.Fprintf(os.Stderr, "wms %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

type app struct {
	cfg *config.Config
}

// datasetFlags registers the dataset file flags shared by all commands.
type datasetFlags struct {
	products     string
	bins         string
	levels       string
	transactions string
}

func (d *datasetFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&d.products, "products", "products.csv", "product catalog file")
	fs.StringVar(&d.bins, "bins", "bins.csv", "bin catalog file")
	fs.StringVar(&d.levels, "levels", "levels.csv", "stock levels file")
	fs.StringVar(&d.transactions, "transactions", "transactions.csv", "transaction log file")
}

func (a *app) runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var files datasetFlags
	files.register(fs)
	query := fs.String("query", "", "search terms, all must match")
	limit := fs.Int("limit", 20, "maximum results")
	fs.Parse(args)

	products, err := loadProducts(ctx, files.products)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "SKU\tNAME\tCATEGORY\tUNIT")
	for _, p := range products.Search(*query, *limit) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.SKU(), p.Name, p.Category, p.Unit)
	}
	return w.Flush()
}

func (a *app) runBins(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bins", flag.ExitOnError)
	var files datasetFlags
	files.register(fs)
	query := fs.String("query", "", "full or shorthand bin code (empty = all)")
	fs.Parse(args)

	bins, err := loadBins(ctx, files.bins)
	if err != nil {
		return err
	}

	matched := bins.All()
	if *query != "" {
		matched = bins.Filter(*query)
	}

	w := newTable()
	fmt.Fprintln(w, "CODE\tZONE\tRACK\tBAY\tLEVEL")
	for _, b := range matched {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", b.Code, location.ZoneName(b.Rack), b.Rack, b.Bay, b.Level)
	}
	return w.Flush()
}

func (a *app) runStock(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stock", flag.ExitOnError)
	var files datasetFlags
	files.register(fs)
	sku := fs.String("sku", "", "show bins holding this product")
	bin := fs.String("bin", "", "show contents of this bin")
	fs.Parse(args)

	register, err := loadRegister(files.levels)
	if err != nil {
		return err
	}

	var levels []stock.BinStock
	switch {
	case *sku != "":
		levels = register.ProductBins(*sku)
		fmt.Printf("total %s: %s\n", *sku, register.ProductAvailability(*sku).String())
	case *bin != "":
		levels = register.BinContents(*bin)
	default:
		return fmt.Errorf("either -sku or -bin is required")
	}

	w := newTable()
	fmt.Fprintln(w, "SKU\tBIN\tQUANTITY")
	for _, lvl := range levels {
		fmt.Fprintf(w, "%s\t%s\t%s\n", lvl.SKU, lvl.BinCode, lvl.Quantity.String())
	}
	return w.Flush()
}

func (a *app) runJournal(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("journal", flag.ExitOnError)
	var files datasetFlags
	files.register(fs)
	sku := fs.String("sku", "", "restrict to one product")
	typeList := fs.String("type", "", "comma-separated type tags (IN,OUT,...)")
	from := fs.String("from", "", "period start, YYYY-MM-DD")
	to := fs.String("to", "", "period end, YYYY-MM-DD")
	search := fs.String("search", "", "multi-term search over sku, type and location")
	sortOrder := fs.String("sort", "desc", "timestamp order: asc or desc")
	limit := fs.Int("limit", 50, "page size")
	offset := fs.Int("offset", 0, "page offset")
	fs.Parse(args)

	loc, err := a.cfg.History.Location()
	if err != nil {
		return err
	}

	log, err := loadLedger(files.transactions)
	if err != nil {
		return err
	}

	filter := ledger.JournalFilter{
		SKU:       *sku,
		Search:    *search,
		SortOrder: *sortOrder,
		Limit:     *limit,
		Offset:    *offset,
	}
	for _, tag := range strings.Split(*typeList, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Types = append(filter.Types, ledger.Type(strings.ToUpper(tag)))
		}
	}
	if filter.From, err = parseDate(*from, loc); err != nil {
		return err
	}
	if filter.To, err = parseDate(*to, loc); err != nil {
		return err
	}

	journal, err := log.Journal(filter)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "TIME\tTYPE\tSKU\tQUANTITY\tLOCATION")
	for _, txn := range journal.Items {
		when := "-"
		if t, ok := txn.Time(loc); ok {
			when = t.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", when, txn.Type, txn.SKU, txn.Quantity.String(), txn.Location)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d entries (offset %d)\n", len(journal.Items), journal.TotalCount, journal.Offset)
	for _, s := range journal.Summary {
		fmt.Printf("  %-6s %4d entries, net %s\n", s.Type, s.Count, s.TotalQuantity.String())
	}
	return nil
}

func (a *app) runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	var files datasetFlags
	files.register(fs)
	sku := fs.String("sku", "", "product SKU (required)")
	from := fs.String("from", "", "window start, YYYY-MM-DD (default: 30 days back)")
	to := fs.String("to", "", "window end, YYYY-MM-DD (default: today)")
	granularity := fs.String("granularity", "daily", "daily, monthly, quarterly or yearly")
	fs.Parse(args)

	loc, err := a.cfg.History.Location()
	if err != nil {
		return err
	}
	floor, err := a.cfg.History.FloorDate(loc)
	if err != nil {
		return err
	}

	log, err := loadLedger(files.transactions)
	if err != nil {
		return err
	}
	register, err := loadRegister(files.levels)
	if err != nil {
		return err
	}

	svc := analytics.NewService(log, register, analytics.Options{
		HistoryFloor: floor,
		Location:     loc,
	})

	var window analytics.Window
	if fromTime, err := parseDate(*from, loc); err != nil {
		return err
	} else if fromTime != nil {
		window.From = *fromTime
	}
	if toTime, err := parseDate(*to, loc); err != nil {
		return err
	} else if toTime != nil {
		window.To = *toTime
	}

	report, err := svc.ItemHistory(ctx, *sku, window, analytics.Granularity(*granularity))
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s to %s  (%s)\n", report.SKU,
		report.Window.From.Format("2006-01-02"), report.Window.To.Format("2006-01-02"),
		report.Granularity)
	fmt.Printf("opening %s, current %s, inbound %s, outbound %s\n\n",
		report.OpeningStock.String(), report.CurrentBalance.String(),
		report.TotalInbound.String(), report.TotalOutbound.String())

	w := newTable()
	if report.Granularity == analytics.GranularityDaily {
		fmt.Fprintln(w, "DATE\tIN\tOUT\tADJ\tBALANCE")
		for _, d := range report.Days {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				d.Date.Format("2006-01-02"),
				d.In.String(), d.Out.String(), d.Adj.String(), d.Balance.String())
		}
	} else {
		fmt.Fprintln(w, "PERIOD\tOPENING\tIN\tOUT\tADJ\tCLOSING")
		for _, p := range report.Periods {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.Key, p.Opening.String(),
				p.In.String(), p.Out.String(), p.Adj.String(), p.Closing.String())
		}
	}
	return w.Flush()
}

func (a *app) runReceive(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("receive", flag.ExitOnError)
	var files datasetFlags
	files.register(fs)
	sku := fs.String("sku", "", "product SKU (required)")
	qty := fs.String("qty", "", "received quantity (required)")
	bin := fs.String("bin", "", "target bin, full or shorthand code (required)")
	supplier := fs.String("supplier", "", "supplier name")
	fs.Parse(args)

	quantity, err := types.QtyFromString(*qty)
	if err != nil {
		return fmt.Errorf("parse quantity %q: %w", *qty, err)
	}

	products, err := loadProducts(ctx, files.products)
	if err != nil {
		return err
	}
	bins, err := loadBins(ctx, files.bins)
	if err != nil {
		return err
	}
	log, err := loadLedger(files.transactions)
	if err != nil {
		return err
	}
	register, err := loadRegister(files.levels)
	if err != nil {
		return err
	}

	doc := receipt.NewInboundReceipt(*supplier)
	doc.AddLine(*sku, quantity, *bin)

	svc := receipt.NewService(products, bins, log, register)
	if err := svc.Post(ctx, doc); err != nil {
		return err
	}

	if err := dataset.WriteTransactions(files.transactions, log.All()); err != nil {
		return err
	}
	var levels []stock.BinStock
	for _, s := range register.SKUs() {
		levels = append(levels, register.ProductBins(s)...)
	}
	if err := dataset.WriteLevels(files.levels, levels); err != nil {
		return err
	}

	fmt.Printf("posted %s: %s x %s into %s\n",
		doc.Number, doc.Lines[0].SKU, doc.Lines[0].Quantity.String(), doc.Lines[0].BinCode)
	return nil
}

func loadProducts(ctx context.Context, path string) (*product.Repository, error) {
	items, err := dataset.LoadProducts(path)
	if err != nil {
		return nil, err
	}
	repo := product.NewRepository()
	if err := repo.Load(ctx, items); err != nil {
		return nil, err
	}
	return repo, nil
}

func loadBins(ctx context.Context, path string) (*location.Repository, error) {
	items, err := dataset.LoadBins(path)
	if err != nil {
		return nil, err
	}
	repo := location.NewRepository()
	if err := repo.Load(ctx, items); err != nil {
		return nil, err
	}
	return repo, nil
}

func loadLedger(path string) (*ledger.Log, error) {
	txns, err := dataset.LoadTransactions(path)
	if err != nil {
		return nil, err
	}
	log := ledger.NewLog()
	if err := log.Load(txns); err != nil {
		return nil, err
	}
	return log, nil
}

func loadRegister(path string) (*stock.Register, error) {
	levels, err := dataset.LoadLevels(path)
	if err != nil {
		return nil, err
	}
	register := stock.NewRegister()
	if err := register.Load(levels); err != nil {
		return nil, err
	}
	return register, nil
}

func parseDate(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	return &t, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
