package engine

import (
	"context"
	"testing"
)

func TestGetAllNotes_PinnedFirstThenRecency(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	a, _ := e.CreateNote(ctx, "A", "")
	b, _ := e.CreateNote(ctx, "B", "")
	c, _ := e.CreateNote(ctx, "C", "")
	if _, err := e.TogglePinNote(ctx, b.ID); err != nil {
		t.Fatalf("TogglePinNote: %v", err)
	}

	all, err := e.GetAllNotes(ctx)
	if err != nil {
		t.Fatalf("GetAllNotes: %v", err)
	}
	want := []string{b.ID, c.ID, a.ID}
	if len(all) != len(want) {
		t.Fatalf("got %d notes, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("all[%d] = %s, want %s", i, all[i].ID, id)
		}
	}
}

func TestArchivedView(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	x, _ := e.CreateNote(ctx, "X", "")
	_, _ = e.CreateNote(ctx, "Y", "")
	if _, err := e.ToggleArchiveNote(ctx, x.ID); err != nil {
		t.Fatalf("ToggleArchiveNote: %v", err)
	}

	all, _ := e.GetAllNotes(ctx)
	for _, n := range all {
		if n.ID == x.ID {
			t.Error("archived note must be excluded from default view")
		}
	}

	archived, err := e.GetArchivedNotes(ctx)
	if err != nil {
		t.Fatalf("GetArchivedNotes: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != x.ID {
		t.Errorf("archived view = %+v, want exactly [X]", archived)
	}
}

func TestArchivedPinnedNote_OnlyInArchivedView(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	n, _ := e.CreateNote(ctx, "", "see https://example.com")
	_, _ = e.TogglePinNote(ctx, n.ID)
	_, _ = e.ToggleArchiveNote(ctx, n.ID)

	if all, _ := e.GetAllNotes(ctx); len(all) != 0 {
		t.Errorf("default view must exclude archived+pinned: %+v", all)
	}
	if linked, _ := e.GetLinkedNotes(ctx); len(linked) != 0 {
		t.Errorf("linked view must exclude archived notes: %+v", linked)
	}
	if untagged, _ := e.GetUntaggedNotes(ctx); len(untagged) != 0 {
		t.Errorf("untagged view must exclude archived notes: %+v", untagged)
	}
	archived, _ := e.GetArchivedNotes(ctx)
	if len(archived) != 1 {
		t.Errorf("archived view = %+v, want exactly one note", archived)
	}
}

func TestUntaggedView(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	tagged, _ := e.CreateNote(ctx, "", "tagged")
	bare, _ := e.CreateNote(ctx, "", "bare")
	_, _ = e.AddTag(ctx, tagged.ID, "label")

	untagged, err := e.GetUntaggedNotes(ctx)
	if err != nil {
		t.Fatalf("GetUntaggedNotes: %v", err)
	}
	if len(untagged) != 1 || untagged[0].ID != bare.ID {
		t.Errorf("untagged = %+v, want only bare note", untagged)
	}

	// Removing the tag makes the note untagged again.
	if err := e.RemoveTag(ctx, tagged.ID, "label"); err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}
	untagged, _ = e.GetUntaggedNotes(ctx)
	if len(untagged) != 2 {
		t.Errorf("expected 2 untagged notes, got %d", len(untagged))
	}
}

func TestLinkedView(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	linked, _ := e.CreateNote(ctx, "", "read http://example.com")
	_, _ = e.CreateNote(ctx, "", "nothing here")

	got, err := e.GetLinkedNotes(ctx)
	if err != nil {
		t.Fatalf("GetLinkedNotes: %v", err)
	}
	if len(got) != 1 || got[0].ID != linked.ID {
		t.Errorf("linked = %+v, want only the note with a URL", got)
	}
}

func TestNotesForTag(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	a, _ := e.CreateNote(ctx, "", "a")
	b, _ := e.CreateNote(ctx, "", "b")
	_, _ = e.CreateNote(ctx, "", "c")
	tag, _ := e.AddTag(ctx, a.ID, "project")
	_, _ = e.AddTag(ctx, b.ID, "project")
	_, _ = e.TogglePinNote(ctx, b.ID)

	got, err := e.GetNotesForTag(ctx, tag.ID)
	if err != nil {
		t.Fatalf("GetNotesForTag: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d notes, want 2", len(got))
	}
	if got[0].ID != b.ID {
		t.Errorf("pinned note should come first: %+v", got)
	}

	// Archived members drop out of the per-tag view.
	_, _ = e.ToggleArchiveNote(ctx, a.ID)
	got, _ = e.GetNotesForTag(ctx, tag.ID)
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("archived note should be excluded: %+v", got)
	}
}
