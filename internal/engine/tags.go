package engine

import (
	"context"
	"fmt"

	"github.com/nordgard/ansuz/internal/models"
	"github.com/nordgard/ansuz/internal/store"
)

// AddTag associates the named tag with the note, creating the tag if it
// does not exist yet. Adding a tag the note already carries is a no-op that
// neither duplicates the association nor reorders existing tags. Returns
// apperr.ErrNotFound when the note does not exist.
func (e *Engine) AddTag(ctx context.Context, noteID, name string) (*models.Tag, error) {
	if err := e.noteExists(ctx, noteID); err != nil {
		return nil, err
	}
	var tag models.Tag
	err := e.inTx(ctx, func(a store.Adapter) error {
		rows, err := a.Query(ctx, `SELECT id, name, icon FROM tags WHERE name = ?`, name)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			if err := a.Exec(ctx, `INSERT INTO tags (name) VALUES (?)`, name); err != nil {
				return fmt.Errorf("engine: create tag: %w", err)
			}
			if rows, err = a.Query(ctx, `SELECT id, name, icon FROM tags WHERE name = ?`, name); err != nil {
				return err
			}
		}
		tag = tagFromRow(rows[0])
		if err := a.Exec(ctx,
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
			noteID, tag.ID); err != nil {
			return fmt.Errorf("engine: associate tag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emit(EventUpdated, noteID)
	return &tag, nil
}

// RemoveTag removes the association between note and tag. Removing a tag
// the note does not carry is a no-op, and the tag row itself survives for
// other notes. Returns apperr.ErrNotFound when the note does not exist.
func (e *Engine) RemoveTag(ctx context.Context, noteID, name string) error {
	if err := e.noteExists(ctx, noteID); err != nil {
		return err
	}
	err := e.db.Exec(ctx, `
		DELETE FROM note_tags
		WHERE note_id = ? AND tag_id IN (SELECT id FROM tags WHERE name = ?)
	`, noteID, name)
	if err != nil {
		return fmt.Errorf("engine: remove tag: %w", err)
	}
	e.emit(EventUpdated, noteID)
	return nil
}

// RenameTag renames oldName to newName. No-op when oldName does not exist
// or equals newName. When a distinct tag already carries newName the two
// are merged: every association moves to the surviving tag without
// duplicates and the oldName row is removed. Otherwise the row is renamed
// in place, keeping its id, icon and associations.
func (e *Engine) RenameTag(ctx context.Context, oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	return e.inTx(ctx, func(a store.Adapter) error {
		oldRows, err := a.Query(ctx, `SELECT id FROM tags WHERE name = ?`, oldName)
		if err != nil {
			return err
		}
		if len(oldRows) == 0 {
			return nil
		}
		oldID := oldRows[0].Int64("id")

		newRows, err := a.Query(ctx, `SELECT id FROM tags WHERE name = ?`, newName)
		if err != nil {
			return err
		}
		if len(newRows) > 0 {
			newID := newRows[0].Int64("id")
			if err := a.Exec(ctx, `
				INSERT OR IGNORE INTO note_tags (note_id, tag_id)
				SELECT note_id, ? FROM note_tags WHERE tag_id = ?
			`, newID, oldID); err != nil {
				return fmt.Errorf("engine: merge tag: %w", err)
			}
			// Cascade drops the old associations.
			if err := a.Exec(ctx, `DELETE FROM tags WHERE id = ?`, oldID); err != nil {
				return fmt.Errorf("engine: drop merged tag: %w", err)
			}
			return nil
		}
		if err := a.Exec(ctx, `UPDATE tags SET name = ? WHERE id = ?`, newName, oldID); err != nil {
			return fmt.Errorf("engine: rename tag: %w", err)
		}
		return nil
	})
}

// DeleteTag removes the tag and, via cascade, every association to it.
// Deleting a non-existent id is a no-op.
func (e *Engine) DeleteTag(ctx context.Context, id int64) error {
	if err := e.db.Exec(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("engine: delete tag: %w", err)
	}
	return nil
}

// GetAllTags returns every tag sorted by name.
func (e *Engine) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := e.db.Query(ctx, `SELECT id, name, icon FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	out := make([]models.Tag, 0, len(rows))
	for _, r := range rows {
		out = append(out, tagFromRow(r))
	}
	return out, nil
}

// UpdateTagIcon sets or clears the presentation hint. A non-existent id is
// a no-op that does not disturb other tags.
func (e *Engine) UpdateTagIcon(ctx context.Context, id int64, icon *string) error {
	if err := e.db.Exec(ctx, `UPDATE tags SET icon = ? WHERE id = ?`, icon, id); err != nil {
		return fmt.Errorf("engine: update tag icon: %w", err)
	}
	return nil
}
