package receipt

import (
	"context"
	"fmt"
	"sync"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/location"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/product"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/stock"
	"github.com/catbe721-cyber/nexus-wms-sub001/pkg/logger"
)

// Service posts inbound receipts against the ledger and the stock register.
type Service struct {
	products *product.Repository
	bins     *location.Repository
	log      *ledger.Log
	register *stock.Register

	mu      sync.Mutex
	lastSeq int
}

// NewService creates a new receipt service.
func NewService(products *product.Repository, bins *location.Repository, log *ledger.Log, register *stock.Register) *Service {
	return &Service{
		products: products,
		bins:     bins,
		log:      log,
		register: register,
	}
}

// Post validates the receipt, resolves its product and bin references, and
// records the movements. Line bin codes may be shorthand; they are
// rewritten to the canonical code of the resolved bin. Posting an already
// posted document is rejected.
func (s *Service) Post(ctx context.Context, doc *InboundReceipt) error {
	if err := doc.CanModify(); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	for i := range doc.Lines {
		line := &doc.Lines[i]

		if _, err := s.products.BySKU(line.SKU); err != nil {
			return fmt.Errorf("line %d: resolve product %q: %w", line.LineNo, line.SKU, err)
		}

		bin, err := s.bins.Resolve(line.BinCode)
		if err != nil {
			return fmt.Errorf("line %d: resolve bin %q: %w", line.LineNo, line.BinCode, err)
		}
		line.BinCode = bin.Code
	}

	if doc.Number == "" {
		doc.Number = s.nextNumber()
	}

	for _, txn := range doc.GenerateTransactions() {
		if err := s.log.Append(txn); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		s.register.Add(txn.SKU, txn.Location, txn.Quantity)
	}

	doc.MarkPosted()
	doc.Touch()

	logger.Info(ctx, "inbound receipt posted",
		"id", doc.ID,
		"number", doc.Number,
		"lines", doc.TotalLines,
		"totalQuantity", doc.TotalQuantity.String(),
	)
	return nil
}

func (s *Service) nextNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeq++
	return fmt.Sprintf("GR-%06d", s.lastSeq)
}
