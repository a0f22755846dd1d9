// Package engine implements the note storage and retrieval engine: CRUD,
// tagging with merge-on-rename, smart views, full-text search, and media
// row lifecycle. It is written purely against the store.Adapter capability
// and never talks to the blob store consumer or UI directly; hosts wire
// those up through options and the change hook.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nordgard/ansuz/internal/blob"
	"github.com/nordgard/ansuz/internal/models"
	"github.com/nordgard/ansuz/internal/store"
)

// Event kinds delivered to the change hook.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Event describes a note change for host wiring (SSE, cache invalidation).
type Event struct {
	Kind   string
	NoteID string
}

// timeLayout is fixed-width UTC so lexical order equals temporal order,
// which lets ORDER BY updated_at work on the stored strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Engine owns the canonical note data and keeps the search index
// continuously consistent with it. One instance per process/worker; it
// performs no locking of its own beyond the default clock and relies on
// the backing store's consistency guarantees.
type Engine struct {
	db       store.Adapter
	blobs    blob.Store // nil when the host is not storage-capable
	newID    func() string
	now      func() string
	onChange func(Event)
}

// Option is a functional option for configuring the engine.
type Option func(*Engine)

// WithIDGenerator overrides the note/media id generator (default: UUIDs).
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithClock overrides the timestamp source. The returned strings must be
// monotonic per engine instance and lexically ordered.
func WithClock(fn func() string) Option {
	return func(e *Engine) { e.now = fn }
}

// WithBlobStore wires up the byte-persistence collaborator. Without it the
// media byte operations fail with apperr.ErrUnsupported.
func WithBlobStore(s blob.Store) Option {
	return func(e *Engine) { e.blobs = s }
}

// New creates an engine over db and applies the schema, including the
// search index.
func New(ctx context.Context, db store.Adapter, opts ...Option) (*Engine, error) {
	e := &Engine{
		db:    db,
		newID: uuid.NewString,
		now:   monotonicClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := db.ExecScript(ctx, coreSchemaSQL); err != nil {
		return nil, fmt.Errorf("engine: apply core schema: %w", err)
	}
	if err := ftsInit(ctx, db); err != nil {
		return nil, fmt.Errorf("engine: apply fts schema: %w", err)
	}
	return e, nil
}

// OnChange registers the change hook. Must be set before concurrent use.
func (e *Engine) OnChange(fn func(Event)) {
	e.onChange = fn
}

func (e *Engine) emit(kind, noteID string) {
	if e.onChange != nil {
		e.onChange(Event{Kind: kind, NoteID: noteID})
	}
}

// inTx runs fn transactionally when the adapter supports it, otherwise
// sequentially against the plain adapter.
func (e *Engine) inTx(ctx context.Context, fn func(store.Adapter) error) error {
	if tx, ok := e.db.(store.Transactor); ok {
		return tx.InTx(ctx, fn)
	}
	return fn(e.db)
}

// monotonicClock returns a timestamp source that never repeats or goes
// backwards within this engine instance.
func monotonicClock() func() string {
	var mu sync.Mutex
	var last time.Time
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now().UTC()
		if !now.After(last) {
			now = last.Add(time.Nanosecond)
		}
		last = now
		return now.Format(timeLayout)
	}
}

const noteColumns = `id, title, body, has_links, pinned, archived, created_at, updated_at`

func noteFromRow(r store.Row) models.Note {
	return models.Note{
		ID:        r.String("id"),
		Title:     r.String("title"),
		Body:      r.String("body"),
		HasLinks:  r.Bool("has_links"),
		Pinned:    r.Bool("pinned"),
		Archived:  r.Bool("archived"),
		CreatedAt: r.String("created_at"),
		UpdatedAt: r.String("updated_at"),
		Tags:      []models.Tag{},
	}
}

func tagFromRow(r store.Row) models.Tag {
	return models.Tag{
		ID:   r.Int64("id"),
		Name: r.String("name"),
		Icon: r.NullString("icon"),
	}
}

// attachTags loads the tag list for every note in notes, in attach order.
func (e *Engine) attachTags(ctx context.Context, notes []*models.Note) error {
	if len(notes) == 0 {
		return nil
	}
	args := make([]any, len(notes))
	ph := make([]string, len(notes))
	for i, n := range notes {
		args[i] = n.ID
		ph[i] = "?"
	}
	rows, err := e.db.Query(ctx, `
		SELECT nt.note_id AS note_id, t.id AS id, t.name AS name, t.icon AS icon
		FROM note_tags nt
		JOIN tags t ON t.id = nt.tag_id
		WHERE nt.note_id IN (`+strings.Join(ph, ", ")+`)
		ORDER BY nt.rowid
	`, args...)
	if err != nil {
		return err
	}
	byNote := make(map[string][]models.Tag, len(notes))
	for _, r := range rows {
		id := r.String("note_id")
		byNote[id] = append(byNote[id], tagFromRow(r))
	}
	for _, n := range notes {
		if tags, ok := byNote[n.ID]; ok {
			n.Tags = tags
		} else {
			n.Tags = []models.Tag{}
		}
	}
	return nil
}
