package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore wraps a SQLite connection with write serialization. SQLite
// supports one writer at a time, so a single connection plus a write mutex
// keeps the background sync loop and HTTP resolve actions from colliding.
type SQLiteStore struct {
	conn    *sql.DB
	writeMu sync.Mutex
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dsn := dbPath + "?_journal=WAL&_fk=1&_busy_timeout=5000"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 10000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			log.Printf("Warning: failed to set %s: %v", pragma, err)
		}
	}

	log.Printf("Connected to SQLite database: %s", dbPath)
	return &SQLiteStore{conn: conn}, nil
}

// EnsureSchema creates tables if they don't exist, from the embedded
// schema.sql.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Ping reports database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// RecordSyncRun stores one fetch-and-consolidate pass.
func (s *SQLiteStore) RecordSyncRun(ctx context.Context, run SyncRun) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO sync_runs (run_id, started_at, vessels_processed, conflicts_detected)
		 VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.VesselsProcessed, run.ConflictsDetected,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// fmtTime converts an optional instant to an RFC3339 string for storage.
func fmtTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// parseTimeString converts a stored RFC3339 string back to an instant.
// Returns nil for NULL or empty values.
func parseTimeString(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
