// Package server exposes the record set and every derived metric over HTTP
// for the dashboard front end.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/moneymap-dev/moneymap/internal/state"
)

// Config holds server configuration.
type Config struct {
	Port      int
	Log       zerolog.Logger
	Container *state.Container
	// AfterMutation runs after every successfully applied mutation,
	// e.g. to auto-commit the data directory. Optional.
	AfterMutation func(action string)
}

// Server is the dashboard HTTP server.
type Server struct {
	router        *chi.Mux
	server        *http.Server
	log           zerolog.Logger
	container     *state.Container
	afterMutation func(action string)
}

// New creates a Server.
func New(cfg Config) *Server {
	s := &Server{
		router:        chi.NewRouter(),
		log:           cfg.Log.With().Str("component", "server").Logger(),
		container:     cfg.Container,
		afterMutation: cfg.AfterMutation,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)

		r.Get("/accounts", s.handleListAccounts)
		r.Post("/accounts", s.handleAddAccount)
		r.Delete("/accounts/{id}", s.handleDeleteAccount)

		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions", s.handleAddTransaction)
		r.Delete("/transactions/{id}", s.handleDeleteTransaction)

		r.Get("/positions", s.handleListPositions)
		r.Post("/positions", s.handleAddPosition)
		r.Put("/positions/{id}/price", s.handleUpdatePositionPrice)
		r.Delete("/positions/{id}", s.handleDeletePosition)

		r.Get("/goals", s.handleListGoals)
		r.Post("/goals", s.handleAddGoal)
		r.Delete("/goals/{id}", s.handleDeleteGoal)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
		r.Get("/targets", s.handleGetTargets)
		r.Put("/targets", s.handleUpdateTargets)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)

		r.Get("/charts/networth.png", s.handleNetWorthChart)
		r.Get("/charts/allocation.png", s.handleAllocationChart)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Handler returns the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving. Blocks until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) mutated(action string) {
	if s.afterMutation != nil {
		s.afterMutation(action)
	}
}
