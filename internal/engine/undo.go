package engine

import (
	"fmt"

	"stockctl/internal/ledger"
)

// UndoLastOrder reverses the quantity effects of the most recent order
// record, removes it from the log and persists both stores. Only the
// single most recent record is ever eligible; there is no redo.
//
// If any logged identifier no longer resolves in the stock table the undo
// aborts with MissingItemError and nothing is touched. On stock-save
// failure the removed record is re-appended to the log (compensation).
func (e *Engine) UndoLastOrder() (*ledger.OrderRecord, error) {
	records, err := e.orders.Load()
	if err != nil {
		return nil, fmt.Errorf("load order log: %w", err)
	}
	if len(records) == 0 {
		return nil, &EmptyLogError{Log: "orders"}
	}
	last := records[len(records)-1]

	stock, err := e.stock.Load()
	if err != nil {
		return nil, fmt.Errorf("load stock table: %w", err)
	}
	for _, ln := range last.Lines {
		row, ok := stock.Get(ln.ID)
		if !ok {
			return nil, &MissingItemError{ID: ln.ID}
		}
		row.Stock += ln.Quantity
	}

	if err := e.orders.Save(records[:len(records)-1]); err != nil {
		return nil, fmt.Errorf("persist order log: %w", err)
	}
	if err := e.stock.Save(stock); err != nil {
		if compErr := e.orders.Save(records); compErr != nil {
			return nil, &CompensationError{Op: "order undo", SaveErr: err, CompErr: compErr}
		}
		return nil, fmt.Errorf("persist stock table (order log restored): %w", err)
	}
	return &last, nil
}

// UndoLastAddition reverses the most recent stock addition: logged
// quantities are subtracted from their rows. A row that would go negative
// (stock sold since the addition) aborts with NegativeStockError before
// anything is persisted.
func (e *Engine) UndoLastAddition() (*ledger.AdditionRecord, error) {
	records, err := e.additions.Load()
	if err != nil {
		return nil, fmt.Errorf("load addition log: %w", err)
	}
	if len(records) == 0 {
		return nil, &EmptyLogError{Log: "additions"}
	}
	last := records[len(records)-1]

	stock, err := e.stock.Load()
	if err != nil {
		return nil, fmt.Errorf("load stock table: %w", err)
	}
	for _, ln := range last.Lines {
		row, ok := stock.Get(ln.ID)
		if !ok {
			return nil, &MissingItemError{ID: ln.ID}
		}
		if row.Stock < ln.Quantity {
			return nil, &NegativeStockError{ID: ln.ID, Have: row.Stock, Remove: ln.Quantity}
		}
		row.Stock -= ln.Quantity
	}

	if err := e.additions.Save(records[:len(records)-1]); err != nil {
		return nil, fmt.Errorf("persist addition log: %w", err)
	}
	if err := e.stock.Save(stock); err != nil {
		if compErr := e.additions.Save(records); compErr != nil {
			return nil, &CompensationError{Op: "addition undo", SaveErr: err, CompErr: compErr}
		}
		return nil, fmt.Errorf("persist stock table (addition log restored): %w", err)
	}
	return &last, nil
}
