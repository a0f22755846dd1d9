// Package blob defines the byte-persistence collaborator for media and a
// file-system implementation of it. The engine owns media bookkeeping rows;
// the blob store owns the bytes, keyed by an opaque reference.
package blob

// Store persists and retrieves media bytes by opaque reference.
type Store interface {
	// Put stores data and returns a reference sufficient to locate it later.
	Put(data []byte, mimeType string) (string, error)
	// Get returns the bytes for ref, or nil when absent.
	Get(ref string) ([]byte, error)
	// Delete removes the bytes for ref. Deleting an absent ref is a no-op.
	Delete(ref string) error
	// Exists reports whether bytes for ref are present.
	Exists(ref string) bool
}
