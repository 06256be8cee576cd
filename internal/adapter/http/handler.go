package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds a TagUpdater to execute business logic and a logger for structured
// logging. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	svc       port.TagUpdater
	logger    *slog.Logger
	maxUpload int64
	router    chi.Router
}

// NewHandler creates a handler with all routes configured. It accepts a
// TagUpdater implementation, a logger and the upload size cap. The returned
// Handler registers handlers for each endpoint on a new chi.Router. CORS is
// open so the browser upload tool can call the API from any origin.
func NewHandler(svc port.TagUpdater, logger *slog.Logger, maxUpload int64) *Handler {
	h := &Handler{svc: svc, logger: logger, maxUpload: maxUpload}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition", "X-Run-Id", "X-Matched-Count", "X-Unmatched-Count"},
	}))

	r.Get("/health", h.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/update", h.handleUpdate)
		r.Post("/update/summary", h.handleUpdateSummary)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
