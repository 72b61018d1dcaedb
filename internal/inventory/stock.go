// Package inventory holds the authoritative stock table and the item line
// validator.
//
// Identifiers are case-insensitive and normalized to upper case on the way
// in. A table containing the same identifier twice is rejected outright
// with DuplicateKeyError; no first-wins fallback exists, so any operation
// that needs the stock table fails until the file is repaired.
package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stockctl/internal/table"
)

// Stock file column names.
const (
	colItemID       = "item_id"
	colStock        = "stock"
	colManufacturer = "manufacturer"
	colCategory     = "category"
	colDescription  = "description"
	colPrice        = "price"
)

// Row is a single stock line. Stock never goes below zero; rows are never
// deleted, only zeroed.
type Row struct {
	ID           string
	Stock        int
	Manufacturer string
	Category     string
	Description  string
	Price        decimal.Decimal
}

// DuplicateKeyError reports an identifier that appears more than once in
// the stock table.
type DuplicateKeyError struct {
	ID string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("stock identifier %q is not unique", e.ID)
}

// NormalizeID trims and upper-cases an item identifier.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Stock is the in-memory stock table, keyed by normalized identifier.
// Row order from the backing file is preserved across a load/save cycle.
type Stock struct {
	rows  map[string]*Row
	order []string
}

// NewStock returns an empty stock table.
func NewStock() *Stock {
	return &Stock{rows: make(map[string]*Row)}
}

// Get resolves an identifier (any case) to its row.
func (s *Stock) Get(id string) (*Row, bool) {
	row, ok := s.rows[NormalizeID(id)]
	return row, ok
}

// Insert adds a new row, normalizing its identifier.
// Returns DuplicateKeyError if the identifier is already present.
func (s *Stock) Insert(row Row) error {
	row.ID = NormalizeID(row.ID)
	if _, exists := s.rows[row.ID]; exists {
		return &DuplicateKeyError{ID: row.ID}
	}
	s.rows[row.ID] = &row
	s.order = append(s.order, row.ID)
	return nil
}

// Rows returns all rows in stable (insertion/file) order.
func (s *Stock) Rows() []*Row {
	out := make([]*Row, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	return out
}

// Len returns the number of rows.
func (s *Stock) Len() int {
	return len(s.order)
}

// Clone returns a deep copy. Processors mutate a clone so a failed persist
// never leaks partial changes into a shared snapshot.
func (s *Stock) Clone() *Stock {
	c := NewStock()
	for _, row := range s.Rows() {
		r := *row
		c.rows[r.ID] = &r
		c.order = append(c.order, r.ID)
	}
	return c
}

// File is the CSV-backed stock store. Every Load reads the whole file;
// every Save rewrites it.
type File struct {
	Path string
}

// Load reads and validates the stock table.
//
// Fails with table.ErrNotFound when the file is absent, DuplicateKeyError
// when an identifier is repeated, and a parse error when a stock cell is
// not a non-negative integer. The description and price columns are
// optional; absent columns load as zero values.
func (f *File) Load() (*Stock, error) {
	t, err := table.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}

	idCol := t.ColumnIndex(colItemID)
	stockCol := t.ColumnIndex(colStock)
	if idCol < 0 || stockCol < 0 {
		return nil, fmt.Errorf("%s: header must contain %q and %q columns", f.Path, colItemID, colStock)
	}
	mfrCol := t.ColumnIndex(colManufacturer)
	catCol := t.ColumnIndex(colCategory)
	descCol := t.ColumnIndex(colDescription)
	priceCol := t.ColumnIndex(colPrice)

	stock := NewStock()
	for i, rec := range t.Rows {
		row := Row{ID: NormalizeID(rec[idCol])}

		qty, err := strconv.Atoi(strings.TrimSpace(rec[stockCol]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: stock %q is not an integer", f.Path, i+1, rec[stockCol])
		}
		if qty < 0 {
			return nil, fmt.Errorf("%s row %d: stock %d is negative", f.Path, i+1, qty)
		}
		row.Stock = qty

		if mfrCol >= 0 {
			row.Manufacturer = rec[mfrCol]
		}
		if catCol >= 0 {
			row.Category = rec[catCol]
		}
		if descCol >= 0 {
			row.Description = rec[descCol]
		}
		if priceCol >= 0 && strings.TrimSpace(rec[priceCol]) != "" {
			price, err := decimal.NewFromString(strings.TrimSpace(rec[priceCol]))
			if err != nil {
				return nil, fmt.Errorf("%s row %d: price %q is not a decimal", f.Path, i+1, rec[priceCol])
			}
			row.Price = price
		}

		if err := stock.Insert(row); err != nil {
			return nil, err
		}
	}
	return stock, nil
}

// Save rewrites the stock table in row order, always emitting the full
// six-column header.
func (f *File) Save(s *Stock) error {
	t := &table.Table{
		Header: []string{colItemID, colStock, colManufacturer, colCategory, colDescription, colPrice},
	}
	for _, row := range s.Rows() {
		t.Rows = append(t.Rows, []string{
			row.ID,
			strconv.Itoa(row.Stock),
			row.Manufacturer,
			row.Category,
			row.Description,
			row.Price.StringFixed(2),
		})
	}
	return table.WriteFile(f.Path, t)
}
