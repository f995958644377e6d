package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:8000"

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 10 * time.Second

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr       string
	CORSOrigin string
	Logger     *log.Logger
	Store      Store
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *httpMetrics
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	registry := newRegistry()
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: NewHandlers(cfg.Store, logger),
		logger:   logger,
		registry: registry,
		metrics:  newHTTPMetrics(registry),
	}

	s.setupMiddleware(cfg.CORSOrigin)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware(corsOrigin string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.StripSlashes)
	s.router.Use(cors(corsOrigin))
	s.router.Use(s.metrics.middleware)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application. Trailing slashes are
// stripped before routing, so "/users/" and "/users" are the same route.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Get("/health", h.Health)
	s.router.Handle("/metrics", metricsHandler(s.registry))

	s.router.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/by-nickname/{nickname}", h.GetUserByNickname)
		r.Get("/{id}", h.GetUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	s.router.Route("/tracks", func(r chi.Router) {
		r.Post("/", h.CreateTrack)
		r.Get("/", h.ListTracks)
		r.Get("/{id}", h.GetTrack)
		r.Put("/{id}", h.UpdateTrack)
		r.Delete("/{id}", h.DeleteTrack)
	})

	s.router.Route("/missions", func(r chi.Router) {
		r.Post("/", h.CreateMission)
		r.Get("/", h.ListMissions)
		r.Get("/by-track/{track_id}", h.ListMissionsByTrack)
		r.Get("/{id}", h.GetMission)
		r.Put("/{id}", h.UpdateMission)
		r.Delete("/{id}", h.DeleteMission)
	})

	s.router.Route("/completed-missions", func(r chi.Router) {
		r.Post("/", h.CompleteMission)
		r.Get("/", h.ListCompletedMissions)
		r.Get("/by-user/{user_id}", h.ListCompletedMissionsByUser)
		r.Get("/{id}", h.GetCompletedMission)
		r.Delete("/{id}", h.DeleteCompletedMission)
	})

	s.router.Get("/user-points/{user_id}", h.UserPoints)
	s.router.Get("/leaderboard", h.Leaderboard)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", "http://"+s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
