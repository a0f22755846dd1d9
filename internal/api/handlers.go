// Package api exposes the note engine over a chi-routed JSON API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nordgard/ansuz/internal/apperr"
	"github.com/nordgard/ansuz/internal/engine"
)

// Handler holds API route handlers over the note engine.
type Handler struct {
	eng *engine.Engine
}

// NewHandler creates a new Handler.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{eng: eng}
}

// writeError maps engine failures onto HTTP statuses.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrUnsupported):
		writeJSON(w, http.StatusNotImplemented, errorBody("no blob store configured"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListNotes handles GET /api/notes with an optional view filter
// (all, untagged, linked, archived).
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	var (
		notes any
		err   error
	)
	switch view {
	case "", "all":
		notes, err = h.eng.GetAllNotes(r.Context())
	case "untagged":
		notes, err = h.eng.GetUntaggedNotes(r.Context())
	case "linked":
		notes, err = h.eng.GetLinkedNotes(r.Context())
	case "archived":
		notes, err = h.eng.GetArchivedNotes(r.Context())
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("unknown view: "+view))
		return
	}
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	note, err := h.eng.GetNote(r.Context(), id)
	if err != nil {
		writeError(w, "get note", err)
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// CreateNote handles POST /api/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.eng.CreateNote(r.Context(), req.Title, req.Body)
	if err != nil {
		writeError(w, "create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PATCH /api/notes/{id}. Omitted fields are preserved.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id := chi.URLParam(r, "id")
	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.eng.UpdateNote(r.Context(), id, req.Title, req.Body)
	if err != nil {
		writeError(w, "update note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}. Idempotent.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.eng.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteNotes handles POST /api/notes/delete (batch form).
func (h *Handler) DeleteNotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.eng.DeleteNotes(r.Context(), req.IDs); err != nil {
		writeError(w, "delete notes", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TogglePin handles POST /api/notes/{id}/pin.
func (h *Handler) TogglePin(w http.ResponseWriter, r *http.Request) {
	note, err := h.eng.TogglePinNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "toggle pin", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// ToggleArchive handles POST /api/notes/{id}/archive.
func (h *Handler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	note, err := h.eng.ToggleArchiveNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "toggle archive", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Search handles GET /api/search?q=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, err := h.eng.Search(r.Context(), q)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
