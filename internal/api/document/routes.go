package document

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers document routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/projects/{project_id}/documents", func(r chi.Router) {
		r.Post("/", h.Ingest)
		r.Get("/", h.ListDocuments)

		r.Route("/{document_id}", func(r chi.Router) {
			r.Put("/", h.ReIngest)
			r.Delete("/", h.DeleteDocument)
		})
	})
}
