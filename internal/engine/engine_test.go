package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/nordgard/ansuz/internal/apperr"
	"github.com/nordgard/ansuz/internal/checksum"
	"github.com/nordgard/ansuz/internal/store"
)

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	e, err := New(context.Background(), s, opts...)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e
}

// memBlob is an in-memory blob store for tests.
type memBlob struct {
	blobs map[string][]byte
}

func newMemBlob() *memBlob {
	return &memBlob{blobs: make(map[string][]byte)}
}

func (m *memBlob) Put(data []byte, _ string) (string, error) {
	ref := checksum.Sum(data)
	m.blobs[ref] = data
	return ref, nil
}

func (m *memBlob) Get(ref string) ([]byte, error) {
	return m.blobs[ref], nil
}

func (m *memBlob) Delete(ref string) error {
	delete(m.blobs, ref)
	return nil
}

func (m *memBlob) Exists(ref string) bool {
	_, ok := m.blobs[ref]
	return ok
}

func TestCreateAndGetNote(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	created, err := e.CreateNote(ctx, "Hello", "world")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
	if created.Pinned || created.Archived {
		t.Error("new note should be neither pinned nor archived")
	}
	if len(created.Tags) != 0 {
		t.Errorf("new note should have empty tag list, got %d", len(created.Tags))
	}

	got, err := e.GetNote(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got == nil {
		t.Fatal("GetNote returned nil for existing note")
	}
	if got.Title != created.Title || got.Body != created.Body ||
		got.CreatedAt != created.CreatedAt || got.UpdatedAt != created.UpdatedAt {
		t.Errorf("GetNote = %+v, want %+v", got, created)
	}
}

func TestGetNote_Absent(t *testing.T) {
	e := testEngine(t)
	got, err := e.GetNote(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent note, got %+v", got)
	}
}

func TestHasLinksDerivation(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	n, err := e.CreateNote(ctx, "", "Check https://example.com")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if !n.HasLinks {
		t.Error("expected has_links = true for body with URL")
	}

	body := "no links"
	updated, err := e.UpdateNote(ctx, n.ID, nil, &body)
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.HasLinks {
		t.Error("has_links should be recomputed to false after body change")
	}
}

func TestUpdateNote_PreservesOmittedFields(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	n, _ := e.CreateNote(ctx, "Title", "Body")

	title := "New title"
	updated, err := e.UpdateNote(ctx, n.ID, &title, nil)
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.Body != "Body" {
		t.Errorf("body = %q, want preserved %q", updated.Body, "Body")
	}
	if updated.UpdatedAt <= n.UpdatedAt {
		t.Error("any update must bump updated_at")
	}
	if updated.CreatedAt != n.CreatedAt {
		t.Error("created_at must not change on update")
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	e := testEngine(t)
	title := "x"
	_, err := e.UpdateNote(context.Background(), "missing", &title, nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateNote_PreservesTags(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	n, _ := e.CreateNote(ctx, "", "v1")
	if _, err := e.AddTag(ctx, n.ID, "work"); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if _, err := e.AddTag(ctx, n.ID, "urgent"); err != nil {
		t.Fatalf("AddTag: %v", err)
	}

	body := "v2"
	updated, err := e.UpdateNote(ctx, n.ID, nil, &body)
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if len(updated.Tags) != 2 {
		t.Fatalf("tag set changed on body update: %+v", updated.Tags)
	}
	if updated.Tags[0].Name != "work" || updated.Tags[1].Name != "urgent" {
		t.Errorf("tag order disturbed: %+v", updated.Tags)
	}
}

func TestDeleteNote(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	n, _ := e.CreateNote(ctx, "", "bye")
	if err := e.DeleteNote(ctx, n.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	got, _ := e.GetNote(ctx, n.ID)
	if got != nil {
		t.Error("note still retrievable after delete")
	}
	all, _ := e.GetAllNotes(ctx)
	for _, x := range all {
		if x.ID == n.ID {
			t.Error("deleted note still listed")
		}
	}

	// Idempotent: deleting again is not an error.
	if err := e.DeleteNote(ctx, n.ID); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestDeleteNotes_Batch(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	a, _ := e.CreateNote(ctx, "", "a")
	b, _ := e.CreateNote(ctx, "", "b")
	c, _ := e.CreateNote(ctx, "", "c")

	if err := e.DeleteNotes(ctx, nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
	if err := e.DeleteNotes(ctx, []string{a.ID, c.ID, "missing"}); err != nil {
		t.Fatalf("DeleteNotes: %v", err)
	}

	all, _ := e.GetAllNotes(ctx)
	if len(all) != 1 || all[0].ID != b.ID {
		t.Errorf("expected only %s to survive, got %+v", b.ID, all)
	}
}

func TestDeleteNote_CascadesTagAssociations(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	n, _ := e.CreateNote(ctx, "", "tagged")
	other, _ := e.CreateNote(ctx, "", "also tagged")
	_, _ = e.AddTag(ctx, n.ID, "shared")
	_, _ = e.AddTag(ctx, other.ID, "shared")

	if err := e.DeleteNote(ctx, n.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	// The tag survives for the other note.
	tags, _ := e.GetAllTags(ctx)
	if len(tags) != 1 || tags[0].Name != "shared" {
		t.Fatalf("tag should survive note deletion: %+v", tags)
	}
	surviving, _ := e.GetNote(ctx, other.ID)
	if len(surviving.Tags) != 1 {
		t.Errorf("other note lost its tag: %+v", surviving.Tags)
	}
}

func TestTogglePinAndArchive(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	n, _ := e.CreateNote(ctx, "", "flags")

	pinned, err := e.TogglePinNote(ctx, n.ID)
	if err != nil {
		t.Fatalf("TogglePinNote: %v", err)
	}
	if !pinned.Pinned {
		t.Error("expected pinned = true after toggle")
	}
	if pinned.UpdatedAt <= n.UpdatedAt {
		t.Error("toggle must refresh updated_at")
	}

	archived, err := e.ToggleArchiveNote(ctx, n.ID)
	if err != nil {
		t.Fatalf("ToggleArchiveNote: %v", err)
	}
	if !archived.Archived || !archived.Pinned {
		t.Errorf("flags are independent: %+v", archived)
	}

	back, _ := e.TogglePinNote(ctx, n.ID)
	if back.Pinned {
		t.Error("second toggle should clear pinned")
	}
}

func TestToggle_NotFound(t *testing.T) {
	e := testEngine(t)
	if _, err := e.TogglePinNote(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("TogglePinNote err = %v, want ErrNotFound", err)
	}
	if _, err := e.ToggleArchiveNote(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("ToggleArchiveNote err = %v, want ErrNotFound", err)
	}
}

func TestChangeHook(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	var events []Event
	e.OnChange(func(ev Event) { events = append(events, ev) })

	n, _ := e.CreateNote(ctx, "", "watched")
	body := "changed"
	_, _ = e.UpdateNote(ctx, n.ID, nil, &body)
	_ = e.DeleteNote(ctx, n.ID)

	want := []string{EventCreated, EventUpdated, EventDeleted}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, kind := range want {
		if events[i].Kind != kind || events[i].NoteID != n.ID {
			t.Errorf("event[%d] = %+v, want kind %s for %s", i, events[i], kind, n.ID)
		}
	}
}

func TestMonotonicClock(t *testing.T) {
	now := monotonicClock()
	prev := now()
	for i := 0; i < 1000; i++ {
		next := now()
		if next <= prev {
			t.Fatalf("clock went backwards: %q then %q", prev, next)
		}
		prev = next
	}
}
