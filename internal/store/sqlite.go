package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite implements Adapter and Transactor over database/sql. The physical
// driver is selected at build time (see driver_cgo.go / driver_purego.go);
// dsn may be a file path or ":memory:".
type SQLite struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database.
func Open(dsn string) (*SQLite, error) {
	conn, err := sql.Open(driverName, applyPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and matches
	// the single-logical-writer model.
	conn.SetMaxOpenConns(1)
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// Exec runs a mutating statement.
func (s *SQLite) Exec(ctx context.Context, stmt string, args ...any) error {
	if _, err := s.conn.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("store: exec: %w", err)
	}
	return nil
}

// Query runs a statement and returns all rows as field maps.
func (s *SQLite) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := s.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	return collectRows(rows)
}

// ExecScript runs a raw multi-statement script.
func (s *SQLite) ExecScript(ctx context.Context, script string) error {
	if _, err := s.conn.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("store: exec script: %w", err)
	}
	return nil
}

// InTx runs fn inside a transaction, passing it an Adapter bound to the tx.
func (s *SQLite) InTx(ctx context.Context, fn func(Adapter) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := fn(&txAdapter{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// txAdapter binds the Adapter capability to an open transaction.
type txAdapter struct {
	tx *sql.Tx
}

func (t *txAdapter) Exec(ctx context.Context, stmt string, args ...any) error {
	if _, err := t.tx.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("store: exec: %w", err)
	}
	return nil
}

func (t *txAdapter) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := t.tx.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	return collectRows(rows)
}

func (t *txAdapter) ExecScript(ctx context.Context, script string) error {
	if _, err := t.tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("store: exec script: %w", err)
	}
	return nil
}

func collectRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("store: columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}
	return out, nil
}

// Verify capability interfaces at compile time.
var (
	_ Adapter    = (*SQLite)(nil)
	_ Transactor = (*SQLite)(nil)
	_ Adapter    = (*txAdapter)(nil)
)
