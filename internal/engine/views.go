package engine

import (
	"context"

	"github.com/nordgard/ansuz/internal/models"
)

// Smart-view ordering: pinned notes first, then newest-updated first.
const viewOrder = `ORDER BY pinned DESC, updated_at DESC`

// GetAllNotes returns non-archived notes, pinned first, newest-updated
// first within each group.
func (e *Engine) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	return e.listNotes(ctx, `SELECT `+noteColumns+` FROM notes WHERE archived = 0 `+viewOrder)
}

// GetUntaggedNotes returns non-archived notes with zero associated tags.
func (e *Engine) GetUntaggedNotes(ctx context.Context) ([]models.Note, error) {
	return e.listNotes(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE archived = 0
		  AND NOT EXISTS (SELECT 1 FROM note_tags nt WHERE nt.note_id = notes.id)
		`+viewOrder)
}

// GetLinkedNotes returns non-archived notes whose body contains a URL.
func (e *Engine) GetLinkedNotes(ctx context.Context) ([]models.Note, error) {
	return e.listNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE archived = 0 AND has_links = 1 `+viewOrder)
}

// GetNotesForTag returns non-archived notes associated with the tag id.
func (e *Engine) GetNotesForTag(ctx context.Context, tagID int64) ([]models.Note, error) {
	return e.listNotes(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE archived = 0
		  AND EXISTS (SELECT 1 FROM note_tags nt WHERE nt.note_id = notes.id AND nt.tag_id = ?)
		`+viewOrder, tagID)
}

// GetArchivedNotes returns only archived notes, newest-updated first.
func (e *Engine) GetArchivedNotes(ctx context.Context) ([]models.Note, error) {
	return e.listNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE archived = 1 ORDER BY updated_at DESC`)
}

func (e *Engine) listNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := e.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	notes := make([]models.Note, len(rows))
	ptrs := make([]*models.Note, len(rows))
	for i, r := range rows {
		notes[i] = noteFromRow(r)
		ptrs[i] = &notes[i]
	}
	if err := e.attachTags(ctx, ptrs); err != nil {
		return nil, err
	}
	return notes, nil
}
