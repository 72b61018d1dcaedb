package inventory

// LineResult is a sealed interface classifying one submitted item line
// against a stock snapshot. Only the five result types in this file
// implement it.
type LineResult interface {
	lineResult() // Sealed - only these types implement it
}

// Valid means the line resolved and the requested quantity is available.
type Valid struct {
	Row      *Row
	Quantity int
}

func (Valid) lineResult() {}

// Empty means the identifier was the "no item" sentinel (blank). Empty
// lines are skipped by the processors; they are not errors.
type Empty struct{}

func (Empty) lineResult() {}

// NotFound means the identifier does not resolve in the stock table.
type NotFound struct {
	ID string
}

func (NotFound) lineResult() {}

// InsufficientStock means the requested quantity strictly exceeds the
// available stock.
type InsufficientStock struct {
	Row       *Row
	Requested int
	Available int
}

func (InsufficientStock) lineResult() {}

// ZeroQuantity means the requested quantity is not a positive integer.
type ZeroQuantity struct{}

func (ZeroQuantity) lineResult() {}

// ValidateLine classifies a single (identifier, quantity) line against a
// stock snapshot. Pure: no side effects on the snapshot.
//
// Check order follows the order form: unresolved identifier first, then
// availability, then the zero-quantity check.
func ValidateLine(id string, quantity int, stock *Stock) LineResult {
	id = NormalizeID(id)
	if id == "" {
		return Empty{}
	}
	row, ok := stock.Get(id)
	if !ok {
		return NotFound{ID: id}
	}
	if quantity > row.Stock {
		return InsufficientStock{Row: row, Requested: quantity, Available: row.Stock}
	}
	if quantity <= 0 {
		return ZeroQuantity{}
	}
	return Valid{Row: row, Quantity: quantity}
}
