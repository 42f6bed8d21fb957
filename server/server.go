// Package server provides HTTP server setup, routing, and graceful
// shutdown for the druglaunchindia API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sumitkarde03/druglaunchindia/config"
	"github.com/sumitkarde03/druglaunchindia/handlers"
	"github.com/sumitkarde03/druglaunchindia/logging"
	"github.com/sumitkarde03/druglaunchindia/metrics"
)

// Server represents the HTTP server.
type Server struct {
	server  *http.Server
	router  chi.Router
	handler *handlers.HTTPHandlerImpl
	config  *config.Config
}

// NewServer creates a server instance wired with middleware and routes.
func NewServer(cfg *config.Config, handler *handlers.HTTPHandlerImpl) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: handler,
		config:  cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures all middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.Metrics)
	s.router.Use(RequestSizeMiddleware(s.config))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Data-Source"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(RateLimitHandler)
	s.router.Use(handlers.AuthMiddleware(s.config.SupabaseJWTSecret))
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/drugs", s.handler.ServeDrugs)
		r.Get("/drugs/search", s.handler.SearchDrugs)
		r.Get("/drugs/{drugID}", s.handler.ServeDrugDetails)
		r.Get("/categories", s.handler.ServeCategories)
		r.Get("/market-stats", s.handler.ServeMarketStats)
		r.Get("/regulatory", s.handler.ServeRegulatory)
		r.Get("/profiles", s.handler.ServeProfiles)
		r.Patch("/profile", s.handler.UpdateProfile)
		r.Get("/health-data/{country}", s.handler.ServeHealthData)
		r.Get("/global-health", s.handler.ServeGlobalHealth)
		r.Get("/status", s.handler.ServeStatus)
	})

	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server.
func (s *Server) Start() error {
	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
