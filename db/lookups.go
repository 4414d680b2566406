package db

import (
	"context"
	"database/sql"
	"fmt"
)

// LookupAttempt is one row of the lookup log: what was asked, how the
// upstream call went, and the registrar when one was learned. The timestamp
// is assigned by the database.
type LookupAttempt struct {
	Domain     string
	InfoType   string
	HTTPStatus int
	Success    bool
	Registrar  string
}

// LookupStore is the sink for lookup attempts. Callers treat failures as
// best-effort: a write error is logged by the caller and never surfaced to
// the requester.
type LookupStore interface {
	Init(ctx context.Context) error
	RecordLookup(ctx context.Context, attempt LookupAttempt) error
	Close() error
}

const createLookupsTable = `
CREATE TABLE IF NOT EXISTS whois_lookups (
	id BIGSERIAL PRIMARY KEY,
	domain VARCHAR(255) NOT NULL,
	info_type VARCHAR(16) NOT NULL,
	http_status INT NOT NULL,
	success BOOLEAN NOT NULL,
	registrar VARCHAR(255),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const insertLookup = `
INSERT INTO whois_lookups (domain, info_type, http_status, success, registrar)
VALUES ($1, $2, $3, $4, $5)`

// SQLStore persists lookup attempts to the whois_lookups table.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(conn *sql.DB) *SQLStore {
	return &SQLStore{db: conn}
}

// Init creates the whois_lookups table if it does not exist yet.
func (s *SQLStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createLookupsTable); err != nil {
		return fmt.Errorf("failed to initialize whois_lookups table: %w", err)
	}
	return nil
}

// RecordLookup inserts one attempt. An empty registrar is stored as NULL.
func (s *SQLStore) RecordLookup(ctx context.Context, attempt LookupAttempt) error {
	registrar := sql.NullString{String: attempt.Registrar, Valid: attempt.Registrar != ""}
	_, err := s.db.ExecContext(ctx, insertLookup,
		attempt.Domain, attempt.InfoType, attempt.HTTPStatus, attempt.Success, registrar)
	if err != nil {
		return fmt.Errorf("failed to record lookup for %q: %w", attempt.Domain, err)
	}
	return nil
}

// Close releases the underlying handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// NoopStore discards lookup attempts. Used when no database is configured.
type NoopStore struct{}

func (NoopStore) Init(context.Context) error                        { return nil }
func (NoopStore) RecordLookup(context.Context, LookupAttempt) error { return nil }
func (NoopStore) Close() error                                      { return nil }
