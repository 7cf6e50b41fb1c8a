// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"textforge-api/api/middleware"
	"textforge-api/core/interfaces"
	"textforge-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	// Title is the OpenAPI title
	Title = "Textforge API"
	// Version is the API version reported by OpenAPI and /healthz
	Version = "1.0.0"

	description = "Formats, validates, diffs and converts structured text: JSON, XML, YAML, CSV, TOML, INI, Markdown, HTML, SQL and Python"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger
	// Limiter is optional; nil disables rate limiting
	Limiter *middleware.RateLimiter
	Flags   featureflags.Manager
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := newRouter()
	return humachi.New(router, newConfig()), router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := newRouter()

	router.Use(chimw.Recoverer)
	router.Use(middleware.RequestIDMiddleware)
	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}
	if cfg.Limiter != nil {
		flags := cfg.Flags
		if flags == nil {
			flags = featureflags.NewEnvManager("")
		}
		router.Use(middleware.RateLimitMiddleware(cfg.Limiter, flags))
	}
	router.Use(chimw.Compress(5))

	return humachi.New(router, newConfig()), router
}

func newRouter() chi.Router {
	router := chi.NewRouter()

	// CORS goes first so preflight requests skip the rest
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Burst"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	return router
}

func newConfig() huma.Config {
	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = description
	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	return config
}
