// Package store executes report queries against the benchmark results
// database: a live Postgres benchto schema, or a local DuckDB snapshot
// of one for offline report generation.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb"
)

// Open opens the results database for the given DSN. Postgres URLs go
// through the pgx stdlib driver; anything else (a file path, optionally
// with a duckdb: prefix, or :memory:) opens as an embedded DuckDB
// database.
//
// Do NOT put a password in the DSN; the driver reads it from the
// environment or a password file.
func Open(dsn string) (*sql.DB, error) {
	driver := "duckdb"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "pgx"
	} else {
		dsn = strings.TrimPrefix(dsn, "duckdb:")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return db, nil
}
