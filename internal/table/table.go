// Package table reads and writes the flat CSV tables that back the stock
// database and the activity logs.
//
// A Table is a header row plus data rows, nothing more. Interpretation of
// columns belongs to the callers (internal/inventory, internal/ledger);
// this package only guarantees the two failure modes the rest of the
// system keys off:
//
//   - ErrNotFound: the backing file does not exist
//   - ErrWriteBlocked: the backing file cannot be (re)written, typically
//     because another process holds it open or the operator lacks
//     permission
//
// All writes are whole-file rewrites. There is no rename-swap and no
// cross-process locking; two concurrent instances of the tool can race.
// That matches the behavior of the files' other producers and is an
// accepted limitation for a single-operator tool.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrNotFound indicates the backing file is absent.
	ErrNotFound = errors.New("table file not found")

	// ErrWriteBlocked indicates the backing file could not be written.
	ErrWriteBlocked = errors.New("table file not writable")
)

// Table is a header row plus data rows. Every row is normalized to the
// header's width on read: short rows are padded with empty cells, long
// rows are truncated.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named column, or -1 if the
// header does not contain it.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadFile loads a CSV table from path.
// Returns ErrNotFound (wrapped) when the file does not exist.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // width is normalized below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: missing header row", path)
	}

	t := &Table{Header: records[0]}
	for _, rec := range records[1:] {
		t.Rows = append(t.Rows, normalizeWidth(rec, len(t.Header)))
	}
	return t, nil
}

// WriteFile rewrites the whole table at path.
// Returns ErrWriteBlocked (wrapped) when the file cannot be opened for
// writing or the write fails mid-flight.
func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteBlocked)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteBlocked)
	}
	for _, row := range t.Rows {
		if err := w.Write(normalizeWidth(row, len(t.Header))); err != nil {
			f.Close()
			return fmt.Errorf("%s: %v: %w", path, err, ErrWriteBlocked)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteBlocked)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrWriteBlocked)
	}
	return nil
}

func normalizeWidth(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width]
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
