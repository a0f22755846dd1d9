package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nordgard/ansuz/internal/apperr"
	"github.com/nordgard/ansuz/internal/linkdetect"
	"github.com/nordgard/ansuz/internal/models"
	"github.com/nordgard/ansuz/internal/store"
)

// CreateNote inserts a new note. Title may be empty; an omitted title stays
// empty rather than being derived from the body. has_links is computed from
// the body at write time.
func (e *Engine) CreateNote(ctx context.Context, title, body string) (*models.Note, error) {
	now := e.now()
	n := &models.Note{
		ID:        e.newID(),
		Title:     title,
		Body:      body,
		HasLinks:  linkdetect.ContainsURL(body),
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []models.Tag{},
	}
	err := e.inTx(ctx, func(a store.Adapter) error {
		if err := a.Exec(ctx, `
			INSERT INTO notes (id, title, body, has_links, pinned, archived, created_at, updated_at)
			VALUES (?, ?, ?, ?, 0, 0, ?, ?)
		`, n.ID, n.Title, n.Body, n.HasLinks, n.CreatedAt, n.UpdatedAt); err != nil {
			return fmt.Errorf("engine: insert note: %w", err)
		}
		return ftsUpsert(ctx, a, n.ID, n.Title, n.Body)
	})
	if err != nil {
		return nil, err
	}
	e.emit(EventCreated, n.ID)
	return n, nil
}

// GetNote returns the note with its tags, or nil when it does not exist.
func (e *Engine) GetNote(ctx context.Context, id string) (*models.Note, error) {
	rows, err := e.db.Query(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	n := noteFromRow(rows[0])
	if err := e.attachTags(ctx, []*models.Note{&n}); err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateNote patches title and/or body. Nil fields are preserved from the
// existing row; any update refreshes updated_at, and a body change
// recomputes has_links.
func (e *Engine) UpdateNote(ctx context.Context, id string, title, body *string) (*models.Note, error) {
	var n models.Note
	err := e.inTx(ctx, func(a store.Adapter) error {
		rows, err := a.Query(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("engine: update note %s: %w", id, apperr.ErrNotFound)
		}
		n = noteFromRow(rows[0])
		if title != nil {
			n.Title = *title
		}
		if body != nil {
			n.Body = *body
			n.HasLinks = linkdetect.ContainsURL(*body)
		}
		n.UpdatedAt = e.now()
		if err := a.Exec(ctx, `
			UPDATE notes SET title = ?, body = ?, has_links = ?, updated_at = ?
			WHERE id = ?
		`, n.Title, n.Body, n.HasLinks, n.UpdatedAt, id); err != nil {
			return fmt.Errorf("engine: update note: %w", err)
		}
		return ftsUpsert(ctx, a, id, n.Title, n.Body)
	})
	if err != nil {
		return nil, err
	}
	if err := e.attachTags(ctx, []*models.Note{&n}); err != nil {
		return nil, err
	}
	e.emit(EventUpdated, id)
	return &n, nil
}

// DeleteNote removes a note and, via cascade, its tag associations and
// media rows. Deleting a non-existent id is a no-op.
func (e *Engine) DeleteNote(ctx context.Context, id string) error {
	return e.DeleteNotes(ctx, []string{id})
}

// DeleteNotes is the batch form of DeleteNote. An empty list is a no-op.
func (e *Engine) DeleteNotes(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	// Collect blob refs before the cascade removes the media rows.
	var refs []string
	if e.blobs != nil {
		args := make([]any, len(ids))
		ph := make([]string, len(ids))
		for i, id := range ids {
			args[i] = id
			ph[i] = "?"
		}
		rows, err := e.db.Query(ctx,
			`SELECT DISTINCT blob_ref FROM media WHERE note_id IN (`+strings.Join(ph, ", ")+`)`, args...)
		if err != nil {
			return err
		}
		for _, r := range rows {
			refs = append(refs, r.String("blob_ref"))
		}
	}

	var deleted []string
	err := e.inTx(ctx, func(a store.Adapter) error {
		for _, id := range ids {
			rows, err := a.Query(ctx, `SELECT 1 AS present FROM notes WHERE id = ?`, id)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				continue
			}
			if err := ftsDelete(ctx, a, id); err != nil {
				return err
			}
			if err := a.Exec(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
				return fmt.Errorf("engine: delete note: %w", err)
			}
			deleted = append(deleted, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Best-effort blob cleanup for refs no other media row still points at.
	for _, ref := range refs {
		rows, err := e.db.Query(ctx, `SELECT 1 AS present FROM media WHERE blob_ref = ? LIMIT 1`, ref)
		if err == nil && len(rows) == 0 {
			_ = e.blobs.Delete(ref)
		}
	}

	for _, id := range deleted {
		e.emit(EventDeleted, id)
	}
	return nil
}

// TogglePinNote flips the pinned flag and refreshes updated_at.
func (e *Engine) TogglePinNote(ctx context.Context, id string) (*models.Note, error) {
	return e.toggleFlag(ctx, id, "pinned")
}

// ToggleArchiveNote flips the archived flag and refreshes updated_at.
func (e *Engine) ToggleArchiveNote(ctx context.Context, id string) (*models.Note, error) {
	return e.toggleFlag(ctx, id, "archived")
}

func (e *Engine) toggleFlag(ctx context.Context, id, col string) (*models.Note, error) {
	var n models.Note
	err := e.inTx(ctx, func(a store.Adapter) error {
		rows, err := a.Query(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("engine: toggle %s on note %s: %w", col, id, apperr.ErrNotFound)
		}
		n = noteFromRow(rows[0])
		var next bool
		switch col {
		case "pinned":
			next = !n.Pinned
			n.Pinned = next
		case "archived":
			next = !n.Archived
			n.Archived = next
		}
		n.UpdatedAt = e.now()
		if err := a.Exec(ctx,
			`UPDATE notes SET `+col+` = ?, updated_at = ? WHERE id = ?`,
			next, n.UpdatedAt, id); err != nil {
			return fmt.Errorf("engine: toggle %s: %w", col, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := e.attachTags(ctx, []*models.Note{&n}); err != nil {
		return nil, err
	}
	e.emit(EventUpdated, id)
	return &n, nil
}

// noteExists resolves the note id, returning apperr.ErrNotFound when absent.
func (e *Engine) noteExists(ctx context.Context, id string) error {
	rows, err := e.db.Query(ctx, `SELECT 1 AS present FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("engine: note %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
