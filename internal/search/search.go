// Package search implements the read-only report view over the stock
// table: free-text search, the low-stock filter, a plain-text rendering
// and export of the current result set to CSV, XLSX or SQLite.
package search

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"stockctl/internal/inventory"
)

// DefaultLowStockLimit is the threshold below which an item counts as
// low stock.
const DefaultLowStockLimit = 15

var fold = cases.Fold()

// Match reports whether a row matches a free-text query. The query is
// split on whitespace; every term must match at least one column
// (AND over terms, OR over columns), case-folded.
func Match(row *inventory.Row, query string) bool {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return true
	}

	columns := []string{
		row.ID,
		row.Manufacturer,
		row.Category,
		row.Description,
		strconv.Itoa(row.Stock),
		row.Price.StringFixed(2),
	}
	for i, c := range columns {
		columns[i] = fold.String(c)
	}

	for _, term := range terms {
		term = fold.String(term)
		hit := false
		for _, c := range columns {
			if strings.Contains(c, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Search returns the rows matching query, in table order.
func Search(stock *inventory.Stock, query string) []*inventory.Row {
	var out []*inventory.Row
	for _, row := range stock.Rows() {
		if Match(row, query) {
			out = append(out, row)
		}
	}
	return out
}

// LowStock returns the rows with stock strictly below limit, in table
// order.
func LowStock(stock *inventory.Stock, limit int) []*inventory.Row {
	var out []*inventory.Row
	for _, row := range stock.Rows() {
		if row.Stock < limit {
			out = append(out, row)
		}
	}
	return out
}

// RenderText renders a result set as a tab-separated report, one row per
// line, matching the four columns of the report table.
func RenderText(rows []*inventory.Row) string {
	var b strings.Builder
	b.WriteString("ITEM ID\tMANUFACTURER\tCATEGORY\tSTOCK\n")
	for _, row := range rows {
		b.WriteString(row.ID)
		b.WriteByte('\t')
		b.WriteString(row.Manufacturer)
		b.WriteByte('\t')
		b.WriteString(row.Category)
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(row.Stock))
		b.WriteByte('\n')
	}
	return b.String()
}
