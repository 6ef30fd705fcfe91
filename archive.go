package secop2

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Archive bulk loads the table into a Postgres table of the given name,
// creating it with one text column per table column if it does not exist.
// Repeated runs append, so one destination table can hold a series of
// snapshots of the same query.
func Archive(db *sql.DB, name string, t *Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("archive %s: table has no columns", name)
	}

	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		defs[i] = pq.QuoteIdentifier(col) + " text"
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pq.QuoteIdentifier(name), strings.Join(defs, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}

	txn, err := db.Begin()
	if err != nil {
		return err
	}
	defer txn.Rollback()

	stmt, err := txn.Prepare(pq.CopyIn(name, t.Columns...))
	if err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	for _, row := range t.Rows {
		vals := make([]interface{}, len(row))
		for i, cell := range row {
			vals[i] = cell
		}
		if _, err := stmt.Exec(vals...); err != nil {
			return fmt.Errorf("archive %s: %w", name, err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	return txn.Commit()
}
