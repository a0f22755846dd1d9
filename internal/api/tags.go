package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func tagID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// ListTags handles GET /api/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.eng.GetAllTags(r.Context())
	if err != nil {
		writeError(w, "list tags", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

// AddTag handles POST /api/notes/{id}/tags {"name": ...}.
func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("tag name is required"))
		return
	}
	tag, err := h.eng.AddTag(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, "add tag", err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// RemoveTag handles DELETE /api/notes/{id}/tags/{name}.
func (h *Handler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	err := h.eng.RemoveTag(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, "remove tag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameTag handles POST /api/tags/rename {"old": ..., "new": ...}.
// Renaming onto an existing tag merges the two.
func (h *Handler) RenameTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Old == "" || req.New == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("old and new names are required"))
		return
	}
	if err := h.eng.RenameTag(r.Context(), req.Old, req.New); err != nil {
		writeError(w, "rename tag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTag handles DELETE /api/tags/{id}. Idempotent.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := tagID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid tag id"))
		return
	}
	if err := h.eng.DeleteTag(r.Context(), id); err != nil {
		writeError(w, "delete tag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTagIcon handles PUT /api/tags/{id}/icon {"icon": ... | null}.
func (h *Handler) UpdateTagIcon(w http.ResponseWriter, r *http.Request) {
	id, ok := tagID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid tag id"))
		return
	}
	var req struct {
		Icon *string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.eng.UpdateTagIcon(r.Context(), id, req.Icon); err != nil {
		writeError(w, "update tag icon", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NotesForTag handles GET /api/tags/{id}/notes.
func (h *Handler) NotesForTag(w http.ResponseWriter, r *http.Request) {
	id, ok := tagID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid tag id"))
		return
	}
	notes, err := h.eng.GetNotesForTag(r.Context(), id)
	if err != nil {
		writeError(w, "notes for tag", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}
