// Package api provides the HTTP API server and handlers for QuoteVibe.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *sqlite.Store
	services *Services
	backends Backends
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	authRateLimiter       *RateLimiter // per client IP
	engagementRateLimiter *RateLimiter // per user
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(db *sqlite.Store, services *Services, backends Backends, limits config.RateLimitConfig, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		db:                    db,
		services:              services,
		backends:              backends,
		router:                router,
		logger:                logger,
		authRateLimiter:       NewRateLimiter(limits.AuthPerMinute),
		engagementRateLimiter: NewRateLimiter(limits.EngagementPerMinute),
	}

	s.setupMiddleware()
	s.api = newHumaAPI(router)
	s.setupRoutes()

	return s
}

// newHumaAPI builds the huma API on top of the chi router with the envelope
// transformer and domain error mapping installed.
func newHumaAPI(router *chi.Mux) huma.API {
	humaConfig := huma.DefaultConfig("QuoteVibe API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()
	return api
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, mainly for tests.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.authRateLimiter != nil {
		s.authRateLimiter.Stop()
	}
	if s.engagementRateLimiter != nil {
		s.engagementRateLimiter.Stop()
	}
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(authMiddleware(s.services.Auth))
}

// setupRoutes registers every operation.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerQuoteRoutes()
	s.registerCategoryRoutes()
	s.registerDiscoverRoutes()
	s.registerMessageRoutes()
	s.registerNotificationRoutes()
	s.registerContentRoutes()
	s.registerAdminRoutes()
}
