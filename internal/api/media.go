package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 50 << 20 // 50 MB

// ListMedia handles GET /api/notes/{id}/media.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	media, err := h.eng.GetMediaForNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "list media", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": media})
}

// UploadMedia handles POST /api/notes/{id}/media (multipart, field "file").
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	media, err := h.eng.StoreMedia(r.Context(), chi.URLParam(r, "id"), mimeType, data)
	if err != nil {
		writeError(w, "store media", err)
		return
	}
	writeJSON(w, http.StatusCreated, media)
}

// GetMedia handles GET /api/media/{id}, serving the raw bytes.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	media, data, err := h.eng.GetMedia(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get media", err)
		return
	}
	if media == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.Header().Set("Content-Type", media.MimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DeleteMedia handles DELETE /api/media/{id}. Idempotent.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.eng.DeleteMedia(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete media", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
