//go:build !sqlite_fts5 && !purego

package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nordgard/ansuz/internal/models"
	"github.com/nordgard/ansuz/internal/store"
)

func ftsInit(_ context.Context, _ store.Adapter) error {
	// FTS5 not compiled in; search uses a LIKE fallback over the notes
	// table, which already stores title and body.
	return nil
}

func ftsUpsert(_ context.Context, _ store.Adapter, _, _, _ string) error { return nil }

func ftsDelete(_ context.Context, _ store.Adapter, _ string) error { return nil }

// searchRows is the LIKE fallback: every word of the raw query must appear
// as a substring of title or body. Rank is flat; ordering degrades to the
// list ordering within the archived grouping.
func searchRows(ctx context.Context, a store.Adapter, raw string, _ string) ([]models.SearchResult, error) {
	terms := strings.Fields(strings.TrimSpace(raw))
	if len(terms) == 0 {
		return nil, nil
	}
	var where []string
	var args []any
	for _, term := range terms {
		where = append(where, `(title LIKE ? OR body LIKE ?)`)
		like := "%" + term + "%"
		args = append(args, like, like)
	}
	rows, err := a.Query(ctx, `
		SELECT `+noteColumns+`, 0.0 AS rank
		FROM notes
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY archived, pinned DESC, updated_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("engine: search: %w", err)
	}
	out := make([]models.SearchResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.SearchResult{Note: noteFromRow(r)})
	}
	return out, nil
}
