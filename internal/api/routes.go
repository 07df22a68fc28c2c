package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hyperengineering/opsboard/internal/metrics"
)

// NewRouter creates a new router with all routes configured. m may be nil,
// in which case /metrics is not served.
func NewRouter(h *Handler, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(m.Middleware)

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", h.Health)

		// Protected routes (auth required unless running in dev mode)
		r.Group(func(r chi.Router) {
			if h.apiKey != "" {
				r.Use(AuthMiddleware(h.apiKey))
			}
			r.Post("/datasets", h.CreateDataset)
			r.Get("/datasets", h.ListDatasets)

			r.Route("/datasets/{id}", func(r chi.Router) {
				r.Use(h.DatasetMiddleware)
				r.Get("/", h.GetDataset)
				r.Delete("/", h.DeleteDataset)
				r.Put("/records", h.ReplaceRecords)
				r.Get("/records", h.ListRecords)
				r.Get("/summary", h.Summary)
				r.Get("/groups", h.Groups)
				r.Put("/timeline", h.ReplaceTimeline)
				r.Get("/timeline", h.Timeline)
			})
		})
	})

	return r
}
