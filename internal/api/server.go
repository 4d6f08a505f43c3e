package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	chatapi "github.com/paperdesk/research-backend/internal/api/chat"
	credentialapi "github.com/paperdesk/research-backend/internal/api/credential"
	"github.com/paperdesk/research-backend/internal/api/docs"
	documentapi "github.com/paperdesk/research-backend/internal/api/document"
	"github.com/paperdesk/research-backend/internal/api/middleware"
	projectapi "github.com/paperdesk/research-backend/internal/api/project"
	"go.uber.org/zap"
)

// Handlers groups the resource handlers mounted under /api/v1.
type Handlers struct {
	Project    *projectapi.Handler
	Document   *documentapi.Handler
	Chat       *chatapi.Handler
	Credential *credentialapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(300 * time.Second)) // Ingestion and synthesis are slow paths

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		projectapi.RegisterRoutes(r, h.Project)
		documentapi.RegisterRoutes(r, h.Document)
		chatapi.RegisterRoutes(r, h.Chat)
		credentialapi.RegisterRoutes(r, h.Credential)
	})

	return r
}
