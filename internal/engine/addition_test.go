package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockctl/internal/inventory"
	"stockctl/internal/ledger"
)

func TestCommitAddition_IncrementsExistingRow(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	additions := &memAdditions{}
	eng := newTestEngine(stock, nil, additions)

	rec, err := eng.CommitAddition(AdditionDraft{Lines: []LineInput{
		{ID: "a1", Quantity: 20},
	}})
	require.NoError(t, err)

	assert.Equal(t, 30, quantityOf(t, stock, "A1"))
	assert.Equal(t, "03/02/2026", rec.Date)
	assert.Equal(t, "14:02:11", rec.Time)
	require.Len(t, additions.records, 1)
	assert.Equal(t, []ledger.AdditionLine{{ID: "A1", Quantity: 20}}, additions.records[0].Lines)
}

func TestCommitAddition_NewItemNeedsManufacturerAndCategory(t *testing.T) {
	for _, tc := range []struct {
		name         string
		manufacturer string
		category     string
	}{
		{"missing manufacturer", "", "Widgets"},
		{"missing category", "Acme", ""},
		{"missing both", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stock := seedStock(t, widgetRow("A1", 10, "1.50"))
			additions := &memAdditions{}
			eng := newTestEngine(stock, nil, additions)

			_, err := eng.CommitAddition(AdditionDraft{Lines: []LineInput{
				{ID: "A1", Quantity: 5},
				{ID: "D4", Quantity: 3, Manufacturer: tc.manufacturer, Category: tc.category},
			}})

			var inc *IncompleteNewItemError
			require.True(t, errors.As(err, &inc), "got %v", err)
			assert.Equal(t, 2, inc.Line)
			assert.Equal(t, "D4", inc.ID)

			// The whole commit is rejected: A1 untouched, no record.
			assert.Equal(t, 10, quantityOf(t, stock, "A1"))
			assert.Empty(t, additions.records)
		})
	}
}

func TestCommitAddition_CreatesNewItem(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	eng := newTestEngine(stock, nil, nil)

	_, err := eng.CommitAddition(AdditionDraft{Lines: []LineInput{
		{ID: "d4", Quantity: 7, Manufacturer: "Delta", Category: "Tools", Description: "Hex driver", Price: dec("4.25")},
	}})
	require.NoError(t, err)

	row, ok := stock.stock.Get("D4")
	require.True(t, ok)
	assert.Equal(t, 7, row.Stock, "new rows start at the added quantity")
	assert.Equal(t, "Delta", row.Manufacturer)
	assert.Equal(t, "Tools", row.Category)
	assert.True(t, row.Price.Equal(dec("4.25")))
}

func TestCommitAddition_NoUpperBoundOnQuantity(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 1, "1.50"))
	eng := newTestEngine(stock, nil, nil)

	_, err := eng.CommitAddition(AdditionDraft{Lines: []LineInput{
		{ID: "A1", Quantity: 100000},
	}})
	require.NoError(t, err)
	assert.Equal(t, 100001, quantityOf(t, stock, "A1"))
}

func TestCommitAddition_ZeroQuantityRejected(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	eng := newTestEngine(stock, nil, nil)

	_, err := eng.CommitAddition(AdditionDraft{Lines: []LineInput{
		{ID: "A1", Quantity: 0},
	}})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.IsType(t, inventory.ZeroQuantity{}, ve.Result)
	assert.Equal(t, 10, quantityOf(t, stock, "A1"))
}

func TestCommitAddition_NoItems(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	eng := newTestEngine(stock, nil, nil)

	_, err := eng.CommitAddition(AdditionDraft{})
	var ni NoItemsError
	require.True(t, errors.As(err, &ni), "got %v", err)
}

func TestCommitAddition_StockSaveFailureCompensatesLog(t *testing.T) {
	stock := seedStock(t, widgetRow("A1", 10, "1.50"))
	stock.saveErr = errors.New("file locked")
	additions := &memAdditions{}
	eng := newTestEngine(stock, nil, additions)

	_, err := eng.CommitAddition(AdditionDraft{Lines: []LineInput{
		{ID: "A1", Quantity: 5},
	}})
	require.Error(t, err)

	assert.Equal(t, 10, quantityOf(t, stock, "A1"))
	assert.Empty(t, additions.records)
}
