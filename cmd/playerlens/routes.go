package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ajeebtech/playerlens/internal/handlers"
	"github.com/ajeebtech/playerlens/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// routerConfig carries what newRouter needs beyond the handler
type routerConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	Limiter        middleware.Limiter // nil disables rate limiting
	Logger         *slog.Logger
}

func newRouter(handler *handlers.Handler, cfg routerConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)

	api := func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger))
		}
		r.Get("/search", handler.Search)
		r.Get("/stats", handler.Stats)
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(api)

		// API v1
		r.Route("/v1", api)
	})

	return r
}
