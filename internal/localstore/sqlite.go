package localstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a Store backed by a SQLite database file. It survives process
// restarts, which is what makes "welcome back" work after the app is closed
// and reopened on the same device.
type SQLite struct {
	db *sql.DB
}

// Open creates or opens a SQLite-backed store at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// NewSQLiteWithDB wraps an existing database handle. The schema must already
// exist. Used in tests to inject mock connections.
func NewSQLiteWithDB(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Read returns the stored snapshot, or nil when the cache slot is empty.
func (s *SQLite) Read(ctx context.Context) ([]byte, error) {
	var snapshot string
	err := s.db.QueryRowContext(ctx,
		"SELECT snapshot FROM session_cache WHERE slot = 1").Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session cache: %w", err)
	}
	return []byte(snapshot), nil
}

// Write replaces the stored snapshot.
func (s *SQLite) Write(ctx context.Context, snapshot []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_cache (slot, snapshot, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		string(snapshot), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write session cache: %w", err)
	}
	return nil
}

// Clear removes the stored snapshot.
func (s *SQLite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session_cache WHERE slot = 1")
	if err != nil {
		return fmt.Errorf("failed to clear session cache: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
