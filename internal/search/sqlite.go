package search

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"stockctl/internal/inventory"
)

const exportSchema = `
CREATE TABLE IF NOT EXISTS stock (
	item_id      TEXT PRIMARY KEY,
	stock        INTEGER NOT NULL,
	manufacturer TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	price        TEXT NOT NULL DEFAULT ''
);
DELETE FROM stock;
`

// ExportSQLite writes rows into a SQLite database at path, replacing any
// previous stock table. Prices are stored as TEXT to keep their exact
// decimal representation.
func ExportSQLite(path string, rows []*inventory.Row) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	// Single writer; exports are small and synchronous.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("apply pragmas: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(exportSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stock (item_id, stock, manufacturer, category, description, price)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.ID, row.Stock, row.Manufacturer, row.Category, row.Description, row.Price.StringFixed(2)); err != nil {
			return fmt.Errorf("insert %s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
