package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// SQLDialect selects placeholder syntax.
type SQLDialect int

const (
	// DialectSQLite uses ? placeholders.
	DialectSQLite SQLDialect = iota
	// DialectPostgreSQL uses $n placeholders.
	DialectPostgreSQL
)

// SQLBackend stores values in one table of a database/sql database:
//
//	CREATE TABLE micro_storage (
//	    item_key   TEXT PRIMARY KEY,
//	    item_value TEXT NOT NULL,
//	    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
type SQLBackend struct {
	db      *sql.DB
	table   string
	dialect SQLDialect
	ownsDB  bool
	closed  atomic.Bool
}

// SQLOption configures an SQLBackend.
type SQLOption func(*SQLBackend)

// WithSQLTable sets the table name. Default: "micro_storage".
func WithSQLTable(name string) SQLOption {
	return func(b *SQLBackend) {
		if name != "" {
			b.table = name
		}
	}
}

// WithSQLDialect sets the SQL dialect. Default: DialectSQLite.
func WithSQLDialect(d SQLDialect) SQLOption {
	return func(b *SQLBackend) {
		b.dialect = d
	}
}

// NewSQLBackend wraps an open database. The caller keeps ownership of db.
func NewSQLBackend(db *sql.DB, opts ...SQLOption) *SQLBackend {
	b := &SQLBackend{
		db:      db,
		table:   "micro_storage",
		dialect: DialectSQLite,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OpenSQLite opens the SQLite database at dsn (a path or ":memory:"),
// creates the table and returns a backend that closes the database on Close.
func OpenSQLite(ctx context.Context, dsn string, opts ...SQLOption) (*SQLBackend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %q: %w", dsn, err)
	}
	// One connection: SQLite allows a single writer and every new
	// connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	b := NewSQLBackend(db, append(opts, WithSQLDialect(DialectSQLite))...)
	b.ownsDB = true
	if err := b.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// Migrate creates the table if it does not exist.
func (b *SQLBackend) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			item_key   TEXT PRIMARY KEY,
			item_value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, b.table)
	if _, err := b.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("storage: create table %s: %w", b.table, err)
	}
	return nil
}

func (b *SQLBackend) placeholder(n int) string {
	if b.dialect == DialectPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// GetItem implements Backend.
func (b *SQLBackend) GetItem(ctx context.Context, key string) (string, bool, error) {
	if b.closed.Load() {
		return "", false, ErrClosed
	}

	query := fmt.Sprintf(`SELECT item_value FROM %s WHERE item_key = %s`, b.table, b.placeholder(1))
	var value string
	err := b.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem implements Backend.
func (b *SQLBackend) SetItem(ctx context.Context, key, value string) error {
	if b.closed.Load() {
		return ErrClosed
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (item_key, item_value, updated_at)
		VALUES (%s, %s, CURRENT_TIMESTAMP)
		ON CONFLICT (item_key) DO UPDATE SET
			item_value = excluded.item_value,
			updated_at = CURRENT_TIMESTAMP`,
		b.table, b.placeholder(1), b.placeholder(2))
	_, err := b.db.ExecContext(ctx, query, key, value)
	return err
}

// RemoveItem implements Backend.
func (b *SQLBackend) RemoveItem(ctx context.Context, key string) error {
	if b.closed.Load() {
		return ErrClosed
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE item_key = %s`, b.table, b.placeholder(1))
	_, err := b.db.ExecContext(ctx, query, key)
	return err
}

// Close implements Backend. It closes the database only when the backend
// opened it.
func (b *SQLBackend) Close() error {
	if b.closed.Swap(true) || !b.ownsDB {
		return nil
	}
	return b.db.Close()
}
