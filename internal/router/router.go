// Package router sets up all HTTP routes and middleware chains for the
// brandforge API server. It organizes routes into the JSON project API,
// generated-page serving, and operational endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brandforge/internal/handlers"
	"brandforge/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. registry may be nil to skip the metrics
// endpoint; limiter may be nil to skip API rate limiting.
func New(api *handlers.API, limiter *middleware.RateLimiter, registry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and metrics, no rate limiting.
	r.Get("/health", healthHandler)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Project API.
	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", api.ListProjects)
			r.Post("/", api.CreateProject)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", api.GetProject)
				r.Post("/scrape", api.ScrapeProject)
				r.Post("/generate", api.GenerateProject)
				r.Post("/edit", api.EditProject)
				r.Get("/versions", api.ListVersions)
				r.Get("/scrape-logs", api.ScrapeLogs)
				r.Get("/style", api.GetStyle)
				r.Put("/style", api.PutStyle)
			})
		})
	})

	// Generated pages are served straight from the version store via the
	// Valkey page cache.
	r.Get("/pages/{id}", api.ServePage)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
