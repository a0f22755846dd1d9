// Package store defines the narrow relational capability the engine is
// written against, plus a SQLite implementation of it. The engine never
// sees database/sql directly, so the same logic runs against a cgo
// file-backed database, a pure-Go embedded database, or an in-memory
// database used for tests.
package store

import "context"

// Row is a single result row as a field map, keyed by column name.
type Row map[string]any

// Adapter is the capability interface the engine consumes.
type Adapter interface {
	// Exec runs a mutating statement with no result rows.
	Exec(ctx context.Context, stmt string, args ...any) error
	// Query runs a statement and returns all matching rows.
	Query(ctx context.Context, stmt string, args ...any) ([]Row, error)
	// ExecScript runs a raw multi-statement schema/init script.
	ExecScript(ctx context.Context, script string) error
}

// Transactor is an optional capability: adapters that can wrap a sequence
// of statements in a transaction implement it. The engine type-asserts for
// it and falls back to sequential statements when absent.
type Transactor interface {
	InTx(ctx context.Context, fn func(Adapter) error) error
}

// String returns the named column as a string. []byte values (how some
// drivers hand back TEXT) are converted; missing or NULL yields "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// Int64 returns the named column as an int64, or 0 when missing or NULL.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Bool interprets the named column as a SQLite boolean (0/1).
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	default:
		return r.Int64(col) != 0
	}
}

// Float64 returns the named column as a float64, or 0 when missing or NULL.
func (r Row) Float64(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// NullString returns the named column as a *string, nil for NULL.
func (r Row) NullString(col string) *string {
	switch v := r[col].(type) {
	case string:
		return &v
	case []byte:
		s := string(v)
		return &s
	default:
		return nil
	}
}
