// Package api serves the snapboard engine over HTTP.
//
// Every request carries a whole scene document. The server builds a fresh
// scene from it, runs one gesture or render, and answers with the resulting
// document, so no scene state is shared between requests.
//
// Routes:
//
//	GET  /healthz
//	GET  /version
//	POST /v1/snap     move shapes by a delta with snapping
//	POST /v1/adjust   drag one handle to a pointer position
//	POST /v1/render   render a document
//
// The render query takes format (svg, png, pdf, dot, topology), scale, grid,
// handles, and selected (comma-separated shape IDs whose handles are drawn).
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/snapboard/pkg/config"
	"github.com/matzehuels/snapboard/pkg/render"
)

const (
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes = 4 << 20
	// RequestTimeout bounds each request, rsvg-convert included.
	RequestTimeout = 30 * time.Second
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	cfg      config.Config
	renderer *render.Renderer
	logger   *log.Logger
}

// New returns a server. A nil renderer renders without a cache and a nil
// logger discards request logs.
func New(cfg config.Config, renderer *render.Renderer, logger *log.Logger) *Server {
	if renderer == nil {
		renderer = render.NewRenderer(nil, nil, 0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg, renderer: renderer, logger: logger}
}

// Routes returns the HTTP handler with middleware installed.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/snap", s.handleSnap)
		r.Post("/adjust", s.handleAdjust)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}
