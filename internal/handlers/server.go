// Package handlers exposes the campaign pipeline over HTTP: contacts,
// configuration, preview, history, image uploads, and the plan/send
// flow with server-sent progress events.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heraldhq/herald/internal/campaign"
	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/internal/history"
	"github.com/heraldhq/herald/pkg/health"
	"github.com/heraldhq/herald/pkg/logger"
	"github.com/heraldhq/herald/pkg/storage"
)

// Server wires the domain services into an HTTP API.
type Server struct {
	contacts contact.Store
	provider config.Provider
	history  history.Store
	service  *campaign.Service
	uploads  storage.Storage
	checks   health.Checks
	runs     *runRegistry
	log      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithUploads enables the image upload and delete endpoints.
func WithUploads(uploads storage.Storage) Option {
	return func(s *Server) { s.uploads = uploads }
}

// WithHealthChecks wires readiness probes.
func WithHealthChecks(checks health.Checks) Option {
	return func(s *Server) { s.checks = checks }
}

// WithLogger sets the server logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer creates the HTTP API server.
func NewServer(
	contacts contact.Store,
	provider config.Provider,
	historyStore history.Store,
	service *campaign.Service,
	opts ...Option,
) *Server {
	s := &Server{
		contacts: contacts,
		provider: provider,
		history:  historyStore,
		service:  service,
		runs:     newRunRegistry(maxPlannedRuns),
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(Recover(s.log))

	r.Get("/health", health.LivenessHandler())
	r.Get("/ready", health.ReadinessHandler(s.checks, health.WithLogger(s.log)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleGetConfig)
		r.Post("/config", s.handleSaveConfig)

		r.Get("/contacts", s.handleListContacts)
		r.Post("/contacts/sync", s.handleSyncContacts)
		r.Post("/contacts/import", s.handleImportContacts)
		r.Get("/contacts/export", s.handleExportContacts)

		r.Post("/campaigns/plan", s.handlePlanCampaign)
		r.Post("/campaigns/send", s.handleSendCampaign)

		r.Post("/preview", s.handlePreview)

		r.Get("/history", s.handleListHistory)
		r.Get("/history/export", s.handleExportHistory)

		r.Post("/uploads/image", s.handleUploadImage)
		r.Delete("/uploads/image", s.handleDeleteImage)
	})

	return r
}
