package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/sambat-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /api/v1/today
//	GET  /api/v1/convert/{system}/{date}
//	GET  /api/v1/format
//	GET  /api/v1/templates
//	GET  /api/v1/month
//	POST /api/v1/month/select
//	GET  /api/v1/admin/years          (X-API-Key)
//	PUT  /api/v1/admin/years/{year}   (X-API-Key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Public routes
		// ======================================================================
		r.Get("/today", handlers.GetToday)
		r.Get("/convert/{system}/{date}", handlers.Convert)
		r.Get("/format", handlers.FormatDate)
		r.Get("/templates", handlers.ListTemplates)
		r.Get("/month", handlers.GetMonth)
		r.Post("/month/select", handlers.SelectDay)

		// ======================================================================
		// Admin routes (API key)
		// ======================================================================
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Get("/years", handlers.ListYears)
			r.Put("/years/{year}", handlers.PutYear)
		})
	})

	return r
}
