package receipt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/types"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/location"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/catalog/product"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/ledger"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/domain/stock"
)

type fixture struct {
	svc      *Service
	log      *ledger.Log
	register *stock.Register
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	products := product.NewRepository()
	require.NoError(t, products.Load(ctx, []*product.Product{
		product.NewProduct("A100", "Sushi Rice 5kg"),
		product.NewProduct("B200", "Nori Sheets"),
	}))

	bins := location.NewRepository()
	require.NoError(t, bins.Load(ctx, []*location.Bin{
		location.NewBin("G", 1, "1"),
		location.NewBin("G", 1, "2"),
		location.NewBin("C", 4, "1"),
	}))

	log := ledger.NewLog()
	register := stock.NewRegister()
	return &fixture{
		svc:      NewService(products, bins, log, register),
		log:      log,
		register: register,
	}
}

func TestPost_RecordsMovements(t *testing.T) {
	f := newFixture(t)

	doc := NewInboundReceipt("Ocean Foods Ltd")
	doc.AddLine("A100", types.Qty(12), "G-01-1")
	doc.AddLine("B200", types.Qty(30), "C-04-1")

	require.NoError(t, f.svc.Post(context.Background(), doc))

	assert.True(t, doc.Posted)
	assert.Equal(t, "GR-000001", doc.Number)
	assert.Equal(t, 2, f.log.Len())
	assert.Equal(t, "12", f.register.Quantity("A100", "G-01-1").String())
	assert.Equal(t, "30", f.register.Quantity("B200", "C-04-1").String())

	history := f.log.History("A100")
	require.Len(t, history, 1)
	assert.Equal(t, ledger.TypeInbound, history[0].Type)
	assert.Equal(t, doc.Date.UnixMilli(), history[0].TimestampMs)
}

func TestPost_ResolvesBinShorthand(t *testing.T) {
	f := newFixture(t)

	// "c41" is shorthand for C-04-1.
	doc := NewInboundReceipt("Ocean Foods Ltd")
	doc.AddLine("A100", types.Qty(5), "c41")

	require.NoError(t, f.svc.Post(context.Background(), doc))
	assert.Equal(t, "C-04-1", doc.Lines[0].BinCode)
	assert.Equal(t, "5", f.register.Quantity("A100", "C-04-1").String())
}

func TestPost_AmbiguousBinRejected(t *testing.T) {
	f := newFixture(t)

	// "g1" matches both G-01-1 and G-01-2.
	doc := NewInboundReceipt("Ocean Foods Ltd")
	doc.AddLine("A100", types.Qty(5), "g1")

	err := f.svc.Post(context.Background(), doc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAmbiguousBin, appErr.Code)
	assert.False(t, doc.Posted)
	assert.Equal(t, 0, f.log.Len())
}

func TestPost_UnknownProductRejected(t *testing.T) {
	f := newFixture(t)

	doc := NewInboundReceipt("Ocean Foods Ltd")
	doc.AddLine("ZZZ", types.Qty(5), "G-01-1")

	err := f.svc.Post(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 0, f.log.Len())
}

func TestPost_AlreadyPostedRejected(t *testing.T) {
	f := newFixture(t)

	doc := NewInboundReceipt("Ocean Foods Ltd")
	doc.AddLine("A100", types.Qty(5), "G-01-1")
	require.NoError(t, f.svc.Post(context.Background(), doc))

	err := f.svc.Post(context.Background(), doc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDocumentPosted, appErr.Code)
	assert.Equal(t, 1, f.log.Len())
}

func TestPost_NumbersAreSequential(t *testing.T) {
	f := newFixture(t)

	for i, want := range []string{"GR-000001", "GR-000002"} {
		doc := NewInboundReceipt("Ocean Foods Ltd")
		doc.AddLine("A100", types.Qty(1), "G-01-1")
		require.NoError(t, f.svc.Post(context.Background(), doc), "doc %d", i)
		assert.Equal(t, want, doc.Number)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	doc := NewInboundReceipt("Ocean Foods Ltd")
	assert.Error(t, doc.Validate(ctx), "no lines")

	doc.AddLine("A100", types.Qty(0), "G-01-1")
	assert.Error(t, doc.Validate(ctx), "zero quantity")

	doc.Lines[0].Quantity = types.Qty(3)
	doc.Lines[0].BinCode = ""
	assert.Error(t, doc.Validate(ctx), "missing bin")

	doc.Lines[0].BinCode = "G-01-1"
	assert.NoError(t, doc.Validate(ctx))
}

func TestAddLine_Totals(t *testing.T) {
	doc := NewInboundReceipt("Ocean Foods Ltd")
	doc.AddLine("A100", types.Qty(12), "G-01-1")
	doc.AddLine("B200", types.MustQty("2.5"), "C-04-1")

	assert.Equal(t, 2, doc.TotalLines)
	assert.Equal(t, "14.5", doc.TotalQuantity.String())
	assert.Equal(t, 1, doc.Lines[0].LineNo)
	assert.Equal(t, 2, doc.Lines[1].LineNo)
}
