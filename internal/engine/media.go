package engine

import (
	"context"
	"fmt"

	"github.com/nordgard/ansuz/internal/apperr"
	"github.com/nordgard/ansuz/internal/models"
	"github.com/nordgard/ansuz/internal/store"
)

const mediaColumns = `id, note_id, mime_type, blob_ref, created_at`

func mediaFromRow(r store.Row) models.Media {
	return models.Media{
		ID:        r.String("id"),
		NoteID:    r.String("note_id"),
		MimeType:  r.String("mime_type"),
		BlobRef:   r.String("blob_ref"),
		CreatedAt: r.String("created_at"),
	}
}

// StoreMedia attaches media bytes to a note: the blob store persists the
// bytes, the engine records the bookkeeping row. Fails with
// apperr.ErrUnsupported when no blob store is wired up and with
// apperr.ErrNotFound when the note does not exist.
func (e *Engine) StoreMedia(ctx context.Context, noteID, mimeType string, data []byte) (*models.Media, error) {
	if e.blobs == nil {
		return nil, fmt.Errorf("engine: store media: %w", apperr.ErrUnsupported)
	}
	if err := e.noteExists(ctx, noteID); err != nil {
		return nil, err
	}
	ref, err := e.blobs.Put(data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("engine: store media bytes: %w", err)
	}
	m := &models.Media{
		ID:        e.newID(),
		NoteID:    noteID,
		MimeType:  mimeType,
		BlobRef:   ref,
		CreatedAt: e.now(),
	}
	if err := e.db.Exec(ctx, `
		INSERT INTO media (id, note_id, mime_type, blob_ref, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.NoteID, m.MimeType, m.BlobRef, m.CreatedAt); err != nil {
		return nil, fmt.Errorf("engine: insert media: %w", err)
	}
	e.emit(EventUpdated, noteID)
	return m, nil
}

// GetMedia returns the media row and its bytes, or nils when absent. Fails
// with apperr.ErrUnsupported when no blob store is wired up.
func (e *Engine) GetMedia(ctx context.Context, id string) (*models.Media, []byte, error) {
	if e.blobs == nil {
		return nil, nil, fmt.Errorf("engine: get media: %w", apperr.ErrUnsupported)
	}
	rows, err := e.db.Query(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	m := mediaFromRow(rows[0])
	data, err := e.blobs.Get(m.BlobRef)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: get media bytes: %w", err)
	}
	return &m, data, nil
}

// DeleteMedia removes a single media row and, when no other row shares the
// blob, its bytes. Deleting a non-existent id is a no-op. Fails with
// apperr.ErrUnsupported when no blob store is wired up.
func (e *Engine) DeleteMedia(ctx context.Context, id string) error {
	if e.blobs == nil {
		return fmt.Errorf("engine: delete media: %w", apperr.ErrUnsupported)
	}
	rows, err := e.db.Query(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	m := mediaFromRow(rows[0])
	if err := e.db.Exec(ctx, `DELETE FROM media WHERE id = ?`, id); err != nil {
		return fmt.Errorf("engine: delete media: %w", err)
	}
	remaining, err := e.db.Query(ctx, `SELECT 1 AS present FROM media WHERE blob_ref = ? LIMIT 1`, m.BlobRef)
	if err == nil && len(remaining) == 0 {
		_ = e.blobs.Delete(m.BlobRef)
	}
	e.emit(EventUpdated, m.NoteID)
	return nil
}

// GetMediaForNote returns the note's media rows by creation time ascending.
// Works without a blob store since it never touches bytes.
func (e *Engine) GetMediaForNote(ctx context.Context, noteID string) ([]models.Media, error) {
	rows, err := e.db.Query(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE note_id = ? ORDER BY created_at`, noteID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Media, 0, len(rows))
	for _, r := range rows {
		out = append(out, mediaFromRow(r))
	}
	return out, nil
}

// MediaRefs returns every distinct blob reference recorded in media rows.
// Used by the blob watcher's reconciliation sweep.
func (e *Engine) MediaRefs(ctx context.Context) ([]string, error) {
	rows, err := e.db.Query(ctx, `SELECT DISTINCT blob_ref FROM media`)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.String("blob_ref"))
	}
	return out, nil
}

// PruneMediaRef drops every media row pointing at ref. Used when the blob
// vanished out from under the store.
func (e *Engine) PruneMediaRef(ctx context.Context, ref string) error {
	if err := e.db.Exec(ctx, `DELETE FROM media WHERE blob_ref = ?`, ref); err != nil {
		return fmt.Errorf("engine: prune media ref: %w", err)
	}
	return nil
}
