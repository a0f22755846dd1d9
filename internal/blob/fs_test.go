package blob

import (
	"bytes"
	"testing"
)

func testFS(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestPutGetRoundTrip(t *testing.T) {
	fs := testFS(t)
	data := []byte("hello blob")

	ref, err := fs.Put(data, "text/plain")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(ref) != 64 {
		t.Fatalf("ref = %q, want 64 hex chars", ref)
	}

	got, err := fs.Get(ref)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %q, want %q", got, data)
	}
}

func TestPutIsContentAddressed(t *testing.T) {
	fs := testFS(t)
	r1, err := fs.Put([]byte("same"), "text/plain")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	r2, err := fs.Put([]byte("same"), "image/png")
	if err != nil {
		t.Fatalf("Put again: %v", err)
	}
	if r1 != r2 {
		t.Errorf("identical content gave different refs: %q vs %q", r1, r2)
	}
	refs, err := fs.Refs()
	if err != nil {
		t.Fatalf("Refs: %v", err)
	}
	if len(refs) != 1 {
		t.Errorf("expected 1 stored blob, got %d", len(refs))
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	fs := testFS(t)
	got, err := fs.Get("00000000000000000000000000000000000000000000000000000000000000aa")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent blob, got %d bytes", len(got))
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	fs := testFS(t)
	ref, _ := fs.Put([]byte("gone soon"), "text/plain")

	if err := fs.Delete(ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fs.Exists(ref) {
		t.Error("blob still exists after delete")
	}
	if err := fs.Delete(ref); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestInvalidRefRejected(t *testing.T) {
	fs := testFS(t)
	if _, err := fs.Get("../../etc/passwd"); err == nil {
		t.Error("expected error for traversal ref")
	}
	if fs.Exists("not-a-ref") {
		t.Error("Exists should be false for invalid ref")
	}
}
