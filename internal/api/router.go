package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nordgard/ansuz/internal/engine"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(eng *engine.Engine, sseHandler http.Handler) chi.Router {
	h := NewHandler(eng)

	r := chi.NewRouter()

	// Notes CRUD and views.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Post("/notes/delete", h.DeleteNotes)
	r.Get("/notes/{id}", h.GetNote)
	r.Patch("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	r.Post("/notes/{id}/pin", h.TogglePin)
	r.Post("/notes/{id}/archive", h.ToggleArchive)

	// Tags.
	r.Get("/tags", h.ListTags)
	r.Post("/notes/{id}/tags", h.AddTag)
	r.Delete("/notes/{id}/tags/{name}", h.RemoveTag)
	r.Post("/tags/rename", h.RenameTag)
	r.Delete("/tags/{id}", h.DeleteTag)
	r.Put("/tags/{id}/icon", h.UpdateTagIcon)
	r.Get("/tags/{id}/notes", h.NotesForTag)

	// Search.
	r.Get("/search", h.Search)

	// Media.
	r.Get("/notes/{id}/media", h.ListMedia)
	r.Post("/notes/{id}/media", h.UploadMedia)
	r.Get("/media/{id}", h.GetMedia)
	r.Delete("/media/{id}", h.DeleteMedia)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
