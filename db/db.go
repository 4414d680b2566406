// Package db records lookup attempts in a relational log table. The store is
// a capability: when no database is configured the rest of the service runs
// against the no-op implementation and never branches on availability.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to the lookup log database using the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach lookup database: %w", err)
	}
	return conn, nil
}
