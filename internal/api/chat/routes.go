package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat and session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/projects/{project_id}", func(r chi.Router) {
		r.Post("/chat", h.Query)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.ListSessions)

			r.Route("/{session_id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Get("/export", h.ExportSession)
			})
		})
	})
}
