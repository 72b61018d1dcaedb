package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockctl/internal/inventory"
	"stockctl/internal/ledger"
)

func widgetRow(id string, stock int, price string) inventory.Row {
	return inventory.Row{
		ID: id, Stock: stock,
		Manufacturer: "Acme", Category: "Widgets",
		Price: dec(price),
	}
}

func TestCommitOrder_DeductsStockAndAppendsRecord(t *testing.T) {
	stock := seedStock(t,
		widgetRow("A1", 10, "1.50"),
		widgetRow("B2", 5, "3.00"),
	)
	orders := &memOrders{}
	eng := newTestEngine(stock, orders, nil)

	rec, err := eng.CommitOrder(OrderDraft{
		Date:      "01/02/2026",
		Postcode:  "LS1 4AB",
		Amount:    dec("20.00"),
		EbayCut:   dec("2.00"),
		PaypalCut: dec("0.88"),
		PostPack:  dec("0.97"),
		Lines: []LineInput{
			{ID: "a1", Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, quantityOf(t, stock, "A1"))
	assert.Equal(t, 5, quantityOf(t, stock, "B2"), "untouched rows keep their stock")

	require.Len(t, orders.records, 1)
	got := orders.records[0]
	assert.Equal(t, "ref-1", got.Ref)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, ledger.OrderLine{ID: "A1", Quantity: 4, Manufacturer: "Acme", Category: "Widgets"}, got.Lines[0])

	// profit = 20.00 - 2.00 - 0.88 - 0.97 - 4*1.50 = 10.15
	assert.Equal(t, "10.15", rec.Profit.StringFixed(2))
}

func TestCommitOrder_SkipsEmptyLines(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	orders := &memOrders{}
	eng := newTestEngine(stock, orders, nil)

	_, err := eng.CommitOrder(OrderDraft{
		Amount: dec("10.00"),
		Lines: []LineInput{
			{ID: "", Quantity: 0}, // untouched trailing form line
			{ID: "A1", Quantity: 2},
			{ID: "   "},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, quantityOf(t, stock, "A1"))
	require.Len(t, orders.records, 1)
	assert.Len(t, orders.records[0].Lines, 1)
}

func TestCommitOrder_NoItems(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	eng := newTestEngine(stock, nil, nil)

	_, err := eng.CommitOrder(OrderDraft{Lines: []LineInput{{ID: ""}}})
	var ni NoItemsError
	require.True(t, errors.As(err, &ni), "got %v", err)
	assert.Equal(t, 10, quantityOf(t, stock, "A1"))
}

func TestCommitOrder_ZeroQuantityRejectsWholeOrder(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"), widgetRow("B2", 5, "3.00"))
	orders := &memOrders{}
	eng := newTestEngine(stock, orders, nil)

	_, err := eng.CommitOrder(OrderDraft{Lines: []LineInput{
		{ID: "A1", Quantity: 4},
		{ID: "B2", Quantity: 0},
	}})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, 2, ve.Line)
	assert.IsType(t, inventory.ZeroQuantity{}, ve.Result)

	assert.Equal(t, 10, quantityOf(t, stock, "A1"), "no partial application")
	assert.Empty(t, orders.records)
}

func TestCommitOrder_FailFastOnFirstOffendingLine(t *testing.T) {
	stock := seedStock(t,
		widgetRow("A1", 10, "1.50"),
		widgetRow("B2", 5, "3.00"),
	)
	eng := newTestEngine(stock, nil, nil)

	// Line 2 overdraws; line 3 references a missing item but must never
	// be reached.
	_, err := eng.CommitOrder(OrderDraft{Lines: []LineInput{
		{ID: "A1", Quantity: 1},
		{ID: "B2", Quantity: 6},
		{ID: "ZZ9", Quantity: 1},
	}})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, 2, ve.Line, "first offending line wins")
	ins, ok := ve.Result.(inventory.InsufficientStock)
	require.True(t, ok, "got %#v", ve.Result)
	assert.Equal(t, 6, ins.Requested)
	assert.Equal(t, 5, ins.Available)

	assert.Equal(t, 10, quantityOf(t, stock, "A1"))
	assert.Equal(t, 5, quantityOf(t, stock, "B2"))
}

func TestCommitOrder_DuplicateLine(t *testing.T) {
	// Two lines for the same item would each validate against the same
	// snapshot and jointly overdraw it.
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	eng := newTestEngine(stock, nil, nil)

	_, err := eng.CommitOrder(OrderDraft{Lines: []LineInput{
		{ID: "A1", Quantity: 6},
		{ID: "a1", Quantity: 6},
	}})

	var dl *DuplicateLineError
	require.True(t, errors.As(err, &dl), "got %v", err)
	assert.Equal(t, "A1", dl.ID)
	assert.Equal(t, 10, quantityOf(t, stock, "A1"))
}

func TestCommitOrder_LogSaveFailureLeavesEverything(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	orders := &memOrders{saveErr: errors.New("file locked")}
	eng := newTestEngine(stock, orders, nil)

	_, err := eng.CommitOrder(OrderDraft{Lines: []LineInput{{ID: "A1", Quantity: 4}}})
	require.Error(t, err)
	assert.False(t, IsRejection(err))

	assert.Equal(t, 10, quantityOf(t, stock, "A1"))
	assert.Zero(t, stock.saves, "stock table must not be written when the log write fails")
	assert.Empty(t, orders.records)
}

func TestCommitOrder_StockSaveFailureCompensatesLog(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	stock.saveErr = errors.New("file locked")
	orders := &memOrders{}
	eng := newTestEngine(stock, orders, nil)

	_, err := eng.CommitOrder(OrderDraft{Lines: []LineInput{{ID: "A1", Quantity: 4}}})
	require.Error(t, err)

	assert.Equal(t, 10, quantityOf(t, stock, "A1"))
	assert.Empty(t, orders.records, "compensating write removes the appended record")
	assert.Equal(t, 2, orders.saves, "append then compensation")
}

func TestCommitOrder_CompensationFailureIsSurfaced(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	stock.saveErr = errors.New("stock file locked")
	eng := New(stock, &compFailOrders{}, &memAdditions{}, &FixedGenerator{Prefix: "ref"}, testClock())

	_, err := eng.CommitOrder(OrderDraft{Lines: []LineInput{{ID: "A1", Quantity: 4}}})

	var ce *CompensationError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "order commit", ce.Op)
	assert.ErrorContains(t, ce.SaveErr, "stock file locked")
	assert.ErrorContains(t, ce.CompErr, "log locked")
}

// compFailOrders accepts the first save (the append) and rejects the
// second (the compensation).
type compFailOrders struct {
	records []ledger.OrderRecord
	saves   int
}

func (m *compFailOrders) Load() ([]ledger.OrderRecord, error) {
	return append([]ledger.OrderRecord{}, m.records...), nil
}

func (m *compFailOrders) Save(records []ledger.OrderRecord) error {
	m.saves++
	if m.saves > 1 {
		return errors.New("log locked")
	}
	m.records = append([]ledger.OrderRecord{}, records...)
	return nil
}
