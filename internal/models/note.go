// Package models defines the domain types for Ansuz.
package models

// Note is a captured note. Timestamps are fixed-width UTC strings so that
// lexical order equals temporal order.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	HasLinks  bool   `json:"has_links"`
	Pinned    bool   `json:"pinned"`
	Archived  bool   `json:"archived"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Tags      []Tag  `json:"tags"`
}

// Tag is a named label shared across notes. Icon is a presentation hint
// with no storage-layer meaning.
type Tag struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}

// Media is the bookkeeping row for a binary attachment. The bytes
// themselves live in the blob store under BlobRef.
type Media struct {
	ID        string `json:"id"`
	NoteID    string `json:"note_id"`
	MimeType  string `json:"mime_type"`
	BlobRef   string `json:"blob_ref"`
	CreatedAt string `json:"created_at"`
}

// SearchResult is a query-time projection: a note plus its relevance rank.
// Lower rank means a better match.
type SearchResult struct {
	Note
	Rank float64 `json:"rank"`
}
