// Package server wires the store, service, handlers and middleware together
// and runs the HTTP server.
//
// This is the composition root. main.go hands over a *config.Config and a
// logger; New builds everything else:
//
//	store (memory or sqlite) → JokeService → JokeHandler → chi routes
//
// Each layer receives only what it needs. The service gets the repository
// interface, the handler gets the service, and nothing but this package
// knows which store backend is running.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"github.com/sakif/jokebox/internal/config"
	"github.com/sakif/jokebox/internal/handler"
	"github.com/sakif/jokebox/internal/metrics"
	"github.com/sakif/jokebox/internal/middleware"
	"github.com/sakif/jokebox/internal/repository"
	"github.com/sakif/jokebox/internal/repository/memory"
	sqliteRepo "github.com/sakif/jokebox/internal/repository/sqlite"
	"github.com/sakif/jokebox/internal/service"
	"github.com/sakif/jokebox/web"
)

// Server owns the router and the joke store for the lifetime of the process.
type Server struct {
	router    *chi.Mux
	config    *config.Config
	logger    *slog.Logger
	store     repository.JokeRepository
	closeFn   func() error
	registry  *prometheus.Registry
	collector *metrics.Collector
}

// New builds the store, seeds it and sets up every route.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, closeFn, err := openStore(cfg.Store.Driver)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := repository.Seed(context.Background(), store); err != nil {
		closeFn()
		return nil, fmt.Errorf("seeding store: %w", err)
	}

	// A private registry keeps tests that build several servers from
	// colliding on the global default registerer.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		logger:    logger,
		store:     store,
		closeFn:   closeFn,
		registry:  reg,
		collector: metrics.NewCollector(reg),
	}

	if err := s.setupRoutes(); err != nil {
		closeFn()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// openStore returns the configured backend and a function that releases it.
func openStore(driver string) (repository.JokeRepository, func() error, error) {
	switch driver {
	case config.DriverSQLite:
		db, err := sqliteRepo.New(sqliteRepo.MemoryDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.DriverMemory, "":
		return memory.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: got %q", config.ErrUnknownStoreDriver, driver)
	}
}

// setupRoutes configures middleware and routes.
//
// ROUTES:
//
//	GET  /                 → joke page (HTML)
//	GET  /static/*         → embedded CSS and JS
//	GET  /api/jokes        → random jokes (JSON)
//	POST /api/jokes        → submit a joke (JSON)
//	GET  /api/categories   → categories with counts (JSON)
//	GET  /healthz          → liveness probe
//	GET  /metrics          → Prometheus scrape endpoint
//
// Middleware order: RequestID first so the logger can read it, Recoverer
// inside the logger so a panic is still logged as a 500.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	if s.config.Metrics.Enabled() {
		s.router.Use(s.collector.Middleware)
	}
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// === Static Files ===
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return fmt.Errorf("locating static files: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	// === Page ===
	pageHandler, err := handler.NewPageHandler(web.FS, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandleIndex)

	// === API ===
	jokeService := service.NewJokeService(s.store, s.logger,
		service.WithRecorder(s.recorder()),
	)
	jokeHandler := handler.NewJokeHandler(jokeService, s.logger)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: s.config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(corsMiddleware.Handler)
		r.Get("/jokes", jokeHandler.HandleFetch)
		r.Post("/jokes", jokeHandler.HandleSubmit)
		r.Get("/categories", jokeHandler.HandleCategories)
	})

	// === Operations ===
	s.router.Get(s.config.Health.Endpoint, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if s.config.Metrics.Enabled() {
		s.router.Handle(s.config.Metrics.Path, metrics.Handler(s.registry))
	}

	return nil
}

func (s *Server) recorder() service.Recorder {
	if !s.config.Metrics.Enabled() {
		return service.NopRecorder{}
	}
	return s.collector
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the store. For both backends this discards every joke.
func (s *Server) Close() error {
	return s.closeFn()
}

// Start runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for up to the configured shutdown timeout and closes the store.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         s.config.HTTP.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.HTTP.ReadTimeout,
		WriteTimeout: s.config.HTTP.WriteTimeout,
		IdleTimeout:  s.config.HTTP.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.HTTP.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.HTTP.Port)),
			slog.String("store", s.config.Store.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
