// Package web provides the HTTP server and handlers for the inventory sorter UI.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/cardsort/internal/config"
	"github.com/JonMunkholm/cardsort/internal/core"
	mw "github.com/JonMunkholm/cardsort/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the inventory sorter.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server

	limiter     *mw.RateLimiter
	stopCleanup context.CancelFunc
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(mw.SecurityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = mw.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		ctx, cancel := context.WithCancel(context.Background())
		s.limiter.StartCleanup(ctx)
		s.stopCleanup = cancel
		s.router.Use(s.limiter.Middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	// Pages carry a session cookie.
	s.router.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.handleIndex)
		r.Post("/upload", s.handleUpload)
		r.Post("/sort", s.handleSort)
		r.Get("/download", s.handleDownload)
		r.Post("/reset", s.handleReset)
	})

	// Stateless API
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/variants", s.handleListVariants)
		r.Post("/process/{variant}", s.handleProcess)
	})
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	addr := s.cfg.Server.Addr()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopCleanup != nil {
		s.stopCleanup()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
