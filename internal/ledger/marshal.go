package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stockctl/internal/table"
)

// Fixed order log columns, followed by item{N}_* groups.
var orderHeader = []string{
	"date", "postcode", "order_amount", "ebay_amount",
	"paypal_amount", "postpack_amount", "profit", "order_ref",
}

// Fixed addition log columns.
var additionHeader = []string{"date", "time"}

func isNotFound(err error) bool {
	return errors.Is(err, table.ErrNotFound)
}

// maxLines returns the widest line count across records, but at least 1
// so an empty log still writes a complete header.
func maxLines(counts []int) int {
	max := 1
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return max
}

func ordersToTable(records []OrderRecord) *table.Table {
	counts := make([]int, len(records))
	for i, r := range records {
		counts[i] = len(r.Lines)
	}
	width := maxLines(counts)

	header := append([]string{}, orderHeader...)
	for n := 1; n <= width; n++ {
		header = append(header,
			fmt.Sprintf("item%d_id", n),
			fmt.Sprintf("item%d_quantity", n),
			fmt.Sprintf("item%d_manufacturer", n),
			fmt.Sprintf("item%d_category", n),
		)
	}

	t := &table.Table{Header: header}
	for _, r := range records {
		row := []string{
			r.Date,
			r.Postcode,
			r.Amount.StringFixed(2),
			r.EbayCut.StringFixed(2),
			r.PaypalCut.StringFixed(2),
			r.PostPack.StringFixed(2),
			r.Profit.StringFixed(2),
			r.Ref,
		}
		for _, ln := range r.Lines {
			row = append(row, ln.ID, strconv.Itoa(ln.Quantity), ln.Manufacturer, ln.Category)
		}
		// Shorter records pad out to the header width in table.WriteFile.
		t.Rows = append(t.Rows, row)
	}
	return t
}

func ordersFromTable(t *table.Table, path string) ([]OrderRecord, error) {
	cols, err := fixedColumns(t, path, orderHeader)
	if err != nil {
		return nil, err
	}

	var records []OrderRecord
	for i, row := range t.Rows {
		rec := OrderRecord{
			Date:     row[cols["date"]],
			Postcode: row[cols["postcode"]],
			Ref:      cell(row, cols, "order_ref"),
		}
		if rec.Amount, err = money(row[cols["order_amount"]]); err != nil {
			return nil, fmt.Errorf("%s row %d: order_amount: %w", path, i+1, err)
		}
		if rec.EbayCut, err = money(row[cols["ebay_amount"]]); err != nil {
			return nil, fmt.Errorf("%s row %d: ebay_amount: %w", path, i+1, err)
		}
		if rec.PaypalCut, err = money(row[cols["paypal_amount"]]); err != nil {
			return nil, fmt.Errorf("%s row %d: paypal_amount: %w", path, i+1, err)
		}
		if rec.PostPack, err = money(row[cols["postpack_amount"]]); err != nil {
			return nil, fmt.Errorf("%s row %d: postpack_amount: %w", path, i+1, err)
		}
		if rec.Profit, err = money(cell(row, cols, "profit")); err != nil {
			return nil, fmt.Errorf("%s row %d: profit: %w", path, i+1, err)
		}

		for n := 1; ; n++ {
			idCol := t.ColumnIndex(fmt.Sprintf("item%d_id", n))
			qtyCol := t.ColumnIndex(fmt.Sprintf("item%d_quantity", n))
			if idCol < 0 || qtyCol < 0 {
				break
			}
			id := strings.TrimSpace(row[idCol])
			if id == "" {
				// This record has fewer lines than the widest one.
				break
			}
			qty, err := strconv.Atoi(strings.TrimSpace(row[qtyCol]))
			if err != nil {
				return nil, fmt.Errorf("%s row %d: item%d_quantity %q is not an integer", path, i+1, n, row[qtyCol])
			}
			ln := OrderLine{ID: id, Quantity: qty}
			if mfrCol := t.ColumnIndex(fmt.Sprintf("item%d_manufacturer", n)); mfrCol >= 0 {
				ln.Manufacturer = row[mfrCol]
			}
			if catCol := t.ColumnIndex(fmt.Sprintf("item%d_category", n)); catCol >= 0 {
				ln.Category = row[catCol]
			}
			rec.Lines = append(rec.Lines, ln)
		}
		records = append(records, rec)
	}
	return records, nil
}

func additionsToTable(records []AdditionRecord) *table.Table {
	counts := make([]int, len(records))
	for i, r := range records {
		counts[i] = len(r.Lines)
	}
	width := maxLines(counts)

	header := append([]string{}, additionHeader...)
	for n := 1; n <= width; n++ {
		header = append(header,
			fmt.Sprintf("item%d_id", n),
			fmt.Sprintf("item%d_quantity", n),
		)
	}

	t := &table.Table{Header: header}
	for _, r := range records {
		row := []string{r.Date, r.Time}
		for _, ln := range r.Lines {
			row = append(row, ln.ID, strconv.Itoa(ln.Quantity))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func additionsFromTable(t *table.Table, path string) ([]AdditionRecord, error) {
	cols, err := fixedColumns(t, path, additionHeader)
	if err != nil {
		return nil, err
	}

	var records []AdditionRecord
	for i, row := range t.Rows {
		rec := AdditionRecord{
			Date: row[cols["date"]],
			Time: row[cols["time"]],
		}
		for n := 1; ; n++ {
			idCol := t.ColumnIndex(fmt.Sprintf("item%d_id", n))
			qtyCol := t.ColumnIndex(fmt.Sprintf("item%d_quantity", n))
			if idCol < 0 || qtyCol < 0 {
				break
			}
			id := strings.TrimSpace(row[idCol])
			if id == "" {
				break
			}
			qty, err := strconv.Atoi(strings.TrimSpace(row[qtyCol]))
			if err != nil {
				return nil, fmt.Errorf("%s row %d: item%d_quantity %q is not an integer", path, i+1, n, row[qtyCol])
			}
			rec.Lines = append(rec.Lines, AdditionLine{ID: id, Quantity: qty})
		}
		records = append(records, rec)
	}
	return records, nil
}

// fixedColumns resolves the required fixed columns, tolerating the
// optional ones (profit, order_ref appear only in later files).
func fixedColumns(t *table.Table, path string, header []string) (map[string]int, error) {
	optional := map[string]bool{"profit": true, "order_ref": true}
	cols := make(map[string]int, len(header))
	for _, name := range header {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			if optional[name] {
				continue
			}
			return nil, fmt.Errorf("%s: header missing %q column", path, name)
		}
		cols[name] = idx
	}
	return cols, nil
}

// cell reads an optional column, returning "" when the column is absent.
func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok {
		return ""
	}
	return row[idx]
}

// money parses a decimal cell; blank cells read as zero.
func money(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a decimal", s)
	}
	return d, nil
}
