//go:build sqlite_fts5 || purego

package engine

import (
	"context"
	"fmt"

	"github.com/nordgard/ansuz/internal/models"
	"github.com/nordgard/ansuz/internal/store"
)

func ftsInit(ctx context.Context, a store.Adapter) error {
	return a.ExecScript(ctx, `
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			id UNINDEXED,
			title,
			body,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
}

// ftsUpsert replaces the index entry for a note. Callers run it inside the
// same transaction as the row mutation so index and row are never
// observably out of step.
func ftsUpsert(ctx context.Context, a store.Adapter, id, title, body string) error {
	if err := a.Exec(ctx, `DELETE FROM notes_fts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("engine: fts delete: %w", err)
	}
	if err := a.Exec(ctx, `INSERT INTO notes_fts (id, title, body) VALUES (?, ?, ?)`, id, title, body); err != nil {
		return fmt.Errorf("engine: fts insert: %w", err)
	}
	return nil
}

func ftsDelete(ctx context.Context, a store.Adapter, id string) error {
	return a.Exec(ctx, `DELETE FROM notes_fts WHERE id = ?`, id)
}

// searchRows executes an FTS5 match and joins back to current row state.
// Non-archived results come first; within each group best rank wins
// (FTS5 rank is more negative for better matches).
func searchRows(ctx context.Context, a store.Adapter, _ string, match string) ([]models.SearchResult, error) {
	rows, err := a.Query(ctx, `
		SELECT notes.id AS id, notes.title AS title, notes.body AS body,
		       notes.has_links AS has_links, notes.pinned AS pinned,
		       notes.archived AS archived, notes.created_at AS created_at,
		       notes.updated_at AS updated_at, notes_fts.rank AS rank
		FROM notes_fts
		JOIN notes ON notes.id = notes_fts.id
		WHERE notes_fts MATCH ?
		ORDER BY notes.archived, notes_fts.rank
	`, match)
	if err != nil {
		return nil, fmt.Errorf("engine: search: %w", err)
	}
	out := make([]models.SearchResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.SearchResult{
			Note: noteFromRow(r),
			Rank: r.Float64("rank"),
		})
	}
	return out, nil
}
