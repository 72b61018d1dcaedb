package engine

import (
	"fmt"
	"strings"

	"stockctl/internal/inventory"
	"stockctl/internal/ledger"
)

// AdditionDraft is a staged stock addition: ordered item lines only, the
// (date, time) key comes from the engine clock at commit time.
type AdditionDraft struct {
	Lines []LineInput
}

// Timestamp formats for addition records.
const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04:05"
)

// CommitAddition validates a draft, increments existing rows, inserts any
// new items and persists both stores.
//
// Unlike an order, a quantity only has to be positive - adding stock
// cannot be insufficient. An identifier absent from the stock table means
// a new item and requires manufacturer and category on the line;
// description and price are optional. The fail-fast and two-phase persist
// behavior matches CommitOrder.
func (e *Engine) CommitAddition(draft AdditionDraft) (*ledger.AdditionRecord, error) {
	stock, err := e.stock.Load()
	if err != nil {
		return nil, fmt.Errorf("load stock table: %w", err)
	}

	seen := make(map[string]bool)
	valid := 0
	for i, in := range draft.Lines {
		id := inventory.NormalizeID(in.ID)
		if id == "" {
			continue
		}
		if seen[id] {
			return nil, &DuplicateLineError{Line: i + 1, ID: id}
		}
		seen[id] = true
		if in.Quantity <= 0 {
			return nil, &ValidationError{Line: i + 1, Result: inventory.ZeroQuantity{}}
		}
		if _, ok := stock.Get(id); !ok {
			if strings.TrimSpace(in.Manufacturer) == "" || strings.TrimSpace(in.Category) == "" {
				return nil, &IncompleteNewItemError{Line: i + 1, ID: id}
			}
		}
		valid++
	}
	if valid == 0 {
		return nil, NoItemsError{}
	}

	var lines []ledger.AdditionLine
	for _, in := range draft.Lines {
		id := inventory.NormalizeID(in.ID)
		if id == "" {
			continue
		}
		if row, ok := stock.Get(id); ok {
			row.Stock += in.Quantity
		} else {
			// Insert cannot fail here: the id was checked absent above.
			_ = stock.Insert(inventory.Row{
				ID:           id,
				Stock:        in.Quantity,
				Manufacturer: in.Manufacturer,
				Category:     in.Category,
				Description:  in.Description,
				Price:        in.Price,
			})
		}
		lines = append(lines, ledger.AdditionLine{ID: id, Quantity: in.Quantity})
	}

	now := e.clock.Now()
	rec := ledger.AdditionRecord{
		Date:  now.Format(dateLayout),
		Time:  now.Format(timeLayout),
		Lines: lines,
	}

	records, err := e.additions.Load()
	if err != nil {
		return nil, fmt.Errorf("load addition log: %w", err)
	}
	records = append(records, rec)

	if err := e.additions.Save(records); err != nil {
		return nil, fmt.Errorf("persist addition log: %w", err)
	}
	if err := e.stock.Save(stock); err != nil {
		if compErr := e.additions.Save(records[:len(records)-1]); compErr != nil {
			return nil, &CompensationError{Op: "addition commit", SaveErr: err, CompErr: compErr}
		}
		return nil, fmt.Errorf("persist stock table (addition log restored): %w", err)
	}
	return &rec, nil
}
