// Package ledger holds the two append-only activity logs: committed
// orders and committed stock additions.
//
// In memory a record carries an ordered slice of lines. The numbered
// item{N}_id / item{N}_quantity column layout used by the CSV files is a
// serialization concern only and lives entirely in marshal.go.
package ledger

import (
	"github.com/shopspring/decimal"

	"stockctl/internal/table"
)

// OrderLine is one sold item within an order. Manufacturer and category
// are resolved from the stock table at commit time for audit purposes.
type OrderLine struct {
	ID           string
	Quantity     int
	Manufacturer string
	Category     string
}

// OrderRecord is one committed order. Immutable once written; removable
// only by undoing the most recent record.
type OrderRecord struct {
	Date      string
	Postcode  string
	Amount    decimal.Decimal
	EbayCut   decimal.Decimal
	PaypalCut decimal.Decimal
	PostPack  decimal.Decimal
	Profit    decimal.Decimal
	Ref       string
	Lines     []OrderLine
}

// AdditionLine is one (identifier, quantity) pair within a stock addition.
type AdditionLine struct {
	ID       string
	Quantity int
}

// AdditionRecord is one committed stock addition, keyed by (date, time).
type AdditionRecord struct {
	Date  string
	Time  string
	Lines []AdditionLine
}

// OrderLog is the CSV-backed order log. An absent file reads as an empty
// log; the file is created on first save.
type OrderLog struct {
	Path string
}

// Load reads every order record in file order.
func (l *OrderLog) Load() ([]OrderRecord, error) {
	t, err := table.ReadFile(l.Path)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return ordersFromTable(t, l.Path)
}

// Save rewrites the whole log.
func (l *OrderLog) Save(records []OrderRecord) error {
	return table.WriteFile(l.Path, ordersToTable(records))
}

// AdditionLog is the CSV-backed stock-addition log. Same conventions as
// OrderLog.
type AdditionLog struct {
	Path string
}

// Load reads every addition record in file order.
func (l *AdditionLog) Load() ([]AdditionRecord, error) {
	t, err := table.ReadFile(l.Path)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return additionsFromTable(t, l.Path)
}

// Save rewrites the whole log.
func (l *AdditionLog) Save(records []AdditionRecord) error {
	return table.WriteFile(l.Path, additionsToTable(records))
}
