//go:build purego

package store

import (
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const driverName = "sqlite3"

// applyPragmas appends connection pragmas in the _pragma form the ncruces
// driver understands. The embedded wazero build ships FTS5 unconditionally.
// _timefmt=sqlite stops the driver from auto-decoding RFC 3339 TEXT into
// time.Time on scan; timestamps are stored and read as strings.
func applyPragmas(dsn string) string {
	pragmas := "_timefmt=sqlite&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if dsn == ":memory:" {
		// WAL is meaningless in memory; foreign keys still matter.
		pragmas = "_timefmt=sqlite&_pragma=foreign_keys(1)"
		return "file::memory:?" + pragmas
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragmas
	}
	return "file:" + dsn + "?" + pragmas
}
