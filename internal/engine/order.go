package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stockctl/internal/inventory"
	"stockctl/internal/ledger"
)

// LineInput is one submitted item line. Manufacturer, category,
// description and price are only consulted for stock additions that
// create new items; orders resolve them from the stock table.
type LineInput struct {
	ID           string
	Quantity     int
	Manufacturer string
	Category     string
	Description  string
	Price        decimal.Decimal
}

// OrderDraft is a staged order: the header fields plus the ordered item
// lines, fully detached from whatever surface collected them.
type OrderDraft struct {
	Date      string
	Postcode  string
	Amount    decimal.Decimal
	EbayCut   decimal.Decimal
	PaypalCut decimal.Decimal
	PostPack  decimal.Decimal
	Lines     []LineInput
}

// CommitOrder validates a draft against the current stock table, deducts
// the sold quantities, appends an order record and persists both stores.
//
// Rejections (ValidationError, DuplicateLineError, NoItemsError) leave
// both stores untouched. Persist failures follow the two-phase discipline
// described in the package comment. On success the committed record,
// including its generated reference and computed profit, is returned.
func (e *Engine) CommitOrder(draft OrderDraft) (*ledger.OrderRecord, error) {
	stock, err := e.stock.Load()
	if err != nil {
		return nil, fmt.Errorf("load stock table: %w", err)
	}

	// Validation pass: fail on the first offending line, before any
	// quantity moves.
	seen := make(map[string]bool)
	valid := 0
	for i, in := range draft.Lines {
		res := inventory.ValidateLine(in.ID, in.Quantity, stock)
		switch res.(type) {
		case inventory.Empty:
			continue
		case inventory.Valid:
			id := inventory.NormalizeID(in.ID)
			if seen[id] {
				return nil, &DuplicateLineError{Line: i + 1, ID: id}
			}
			seen[id] = true
			valid++
		default:
			return nil, &ValidationError{Line: i + 1, Result: res}
		}
	}
	if valid == 0 {
		return nil, NoItemsError{}
	}

	// Application pass over the in-memory snapshot.
	var (
		lines []ledger.OrderLine
		cost  decimal.Decimal
	)
	for _, in := range draft.Lines {
		id := inventory.NormalizeID(in.ID)
		if id == "" {
			continue
		}
		row, _ := stock.Get(id)
		row.Stock -= in.Quantity
		cost = cost.Add(row.Price.Mul(decimal.NewFromInt(int64(in.Quantity))))
		lines = append(lines, ledger.OrderLine{
			ID:           id,
			Quantity:     in.Quantity,
			Manufacturer: row.Manufacturer,
			Category:     row.Category,
		})
	}

	rec := ledger.OrderRecord{
		Date:      draft.Date,
		Postcode:  draft.Postcode,
		Amount:    draft.Amount,
		EbayCut:   draft.EbayCut,
		PaypalCut: draft.PaypalCut,
		PostPack:  draft.PostPack,
		Profit:    draft.Amount.Sub(draft.EbayCut).Sub(draft.PaypalCut).Sub(draft.PostPack).Sub(cost).Round(2),
		Ref:       e.refs.Generate(),
		Lines:     lines,
	}

	records, err := e.orders.Load()
	if err != nil {
		return nil, fmt.Errorf("load order log: %w", err)
	}
	records = append(records, rec)

	// Phase one: the log. A failure here leaves both files as they were.
	if err := e.orders.Save(records); err != nil {
		return nil, fmt.Errorf("persist order log: %w", err)
	}

	// Phase two: the stock table, compensating the log on failure.
	if err := e.stock.Save(stock); err != nil {
		if compErr := e.orders.Save(records[:len(records)-1]); compErr != nil {
			return nil, &CompensationError{Op: "order commit", SaveErr: err, CompErr: compErr}
		}
		return nil, fmt.Errorf("persist stock table (order log restored): %w", err)
	}
	return &rec, nil
}
