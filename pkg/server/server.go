// Package server exposes the lifeline pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                 liveness probe
//	POST /v1/scene                event text in, scene JSON out
//	POST /v1/render/{format}      event text in, artifact out (svg, json, dot, graphviz)
//
// Request bodies are plain event text, one DD/MM/YYYY line per event. Render
// options come from query parameters (title, subtitle, scale, detailed,
// allow_empty, filename) on top of the server defaults. Errors are returned
// as {"code": ..., "message": ...} with a status derived from the error code.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// Default timeouts.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config controls the HTTP server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Defaults are the pipeline options every request starts from.
	Defaults pipeline.Options
}

// Server serves the lifeline API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/scene", s.handleScene)
		r.Post("/render/{format}", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	return r
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context ends, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	s.logger.Info("listening", "addr", ln.Addr().String())
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
