package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"globe-news/internal/core"
	"globe-news/internal/features/news"
	"globe-news/internal/features/news/views"
)

type Server struct {
	config     *core.Config
	logger     *slog.Logger
	coreLogger *core.Logger
	renderer   *views.Renderer
	registry   *core.Registry
	server     *http.Server
}

func New(logger *slog.Logger) *Server {
	config, err := core.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	coreLogger := core.NewLogger()

	renderer, err := views.New(coreLogger)
	if err != nil {
		logger.Error("Failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	registry := core.NewRegistry(coreLogger)

	newsFeature := news.NewFeature(coreLogger, config, renderer)
	if err := registry.Register(newsFeature); err != nil {
		logger.Error("Failed to register news feature", "error", err)
		os.Exit(1)
	}

	srv := &Server{
		config:     config,
		logger:     logger,
		coreLogger: coreLogger,
		renderer:   renderer,
		registry:   registry,
	}

	srv.setupRoutes()

	return srv
}

func (s *Server) setupRoutes() {
	mux := chi.NewRouter()

	// Add middleware
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Logger)
	mux.Use(s.recoverer)

	// Feature routes - use the registry to get all feature routes
	routes := s.registry.GetAllRoutes()
	for _, route := range routes {
		mux.Method(route.Method, route.Path, route.Handler)
	}

	// Unknown routes render the HTML 404 page
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderer.RenderError(w, http.StatusNotFound, "Page not found")
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler: mux,
	}
}

// recoverer turns route panics into the HTML 500 page so both error routes
// go through the same template
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("Panic while serving request", "path", r.URL.Path, "panic", rec)
				s.renderer.RenderError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Start() error {
	ctx := context.Background()
	if err := s.registry.InitAll(ctx); err != nil {
		s.logger.Error("Failed to initialize features", "error", err)
		return err
	}

	s.logger.Info("Starting server",
		"host", s.config.Server.Host,
		"port", s.config.Server.Port,
		"backend", s.config.Backend.URL)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.registry.ShutdownAll(ctx); err != nil {
		s.logger.Error("Failed to shutdown features", "error", err)
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}
