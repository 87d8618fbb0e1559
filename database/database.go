package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect opens the ledger database, used when the audit trail is kept in
// Postgres instead of the facility spreadsheet.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The ledger is append-only and low volume; a small pool is plenty.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	return db, nil
}
