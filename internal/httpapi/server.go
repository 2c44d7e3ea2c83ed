// Package httpapi exposes the practice services over HTTP. The caller's
// identity is taken from the X-User-ID header set by the fronting auth
// layer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/etude/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// DefaultHTTPTimeout bounds a single request.
const DefaultHTTPTimeout = 30 * time.Second

// Services are the use cases the API serves.
type Services struct {
	Practice service.PracticeService
	Sessions service.SessionLogService
	Progress service.ProgressService
}

type Server struct {
	router  chi.Router
	svc     Services
	logger  zerolog.Logger
	version string
}

func NewServer(svc Services, logger zerolog.Logger, version string) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		svc:     svc,
		logger:  logger,
		version: version,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(DefaultHTTPTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/catalog", s.handleCatalog)
	s.router.Get("/api/ids/decode", s.handleDecode)

	s.router.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/api/status", s.handleGetStatus)
		r.Put("/api/status", s.handleSetStatus)
		r.Get("/api/statuses", s.handleListStatuses)

		r.Get("/api/bpm", s.handleGetBPM)
		r.Post("/api/bpm", s.handleRaiseBPM)
		r.Delete("/api/bpm", s.handleResetBPM)
		r.Get("/api/bpms", s.handleListBPMs)

		r.Post("/api/snapshots", s.handleSnapshot)
		r.Get("/api/logs", s.handleListLogs)
		r.Post("/api/logs", s.handleLogSession)

		r.Get("/api/grades", s.handleGrades)
		r.Get("/api/grades/{level}", s.handleGrade)
		r.Get("/api/focus", s.handleFocus)

		r.Delete("/api/families/{family}", s.handleClearFamily)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Msg("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
