// Package testutil provides shared test helpers for setting up stores and blob directories.
package testutil

import (
	"testing"

	"github.com/nordgard/ansuz/internal/blob"
	"github.com/nordgard/ansuz/internal/store"
)

// TestStore opens an in-memory SQLite store that is closed when the test ends.
func TestStore(t *testing.T) *store.SQLite {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestBlobStore creates a content-addressed blob store in a temp directory.
func TestBlobStore(t *testing.T) *blob.FS {
	t.Helper()
	fs, err := blob.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}
	return fs
}
