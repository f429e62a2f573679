package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"startup-hub/backend/internal/api"
	"startup-hub/backend/internal/config"
	"startup-hub/backend/internal/db"
	"startup-hub/backend/internal/jobs"
	"startup-hub/backend/internal/logging"
	"startup-hub/backend/internal/metrics"
	"startup-hub/backend/internal/middleware"
)

// RegisterRoutes builds the full HTTP handler: global middleware, health
// and metrics endpoints, and the API route groups.
func RegisterRoutes(cfg *config.Config, upSince time.Time) (http.Handler, error) {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))
	r.Handle("/metrics", promhttp.Handler())

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		return nil, err
	}

	// Scheduled cleanup of expired confirmation codes.
	jobs.InitializeJobs(context.Background(), deps.Repo.Codes)

	RegisterAPIRoutes(r, deps)

	return r, nil
}
