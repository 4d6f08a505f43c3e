package credential

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers credential routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/projects/{project_id}/credential", func(r chi.Router) {
		r.Put("/", h.Put)
		r.Get("/", h.Status)
		r.Delete("/", h.Delete)
	})
}
