//go:build !purego

package store

import (
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

// applyPragmas appends the connection pragmas the mattn driver reads from
// the DSN query string.
func applyPragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	}
	return dsn + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
}
