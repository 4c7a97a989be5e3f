// Package server exposes chain generation over HTTP.
//
// Routes:
//
//	GET /                   HTML viewer page
//	GET /healthz            liveness probe
//	GET /api/chain          XYZ text
//	GET /api/chain.json     JSON chain document
//	GET /api/chain.msgpack  MessagePack chain document
//	GET /api/download       XYZ as an attachment named polymer.xyz
//	GET /api/render.svg     ball-and-stick picture (also .png, .pdf)
//	GET /api/bonds.svg      Graphviz bond diagram
//	GET /ws                 websocket for live regeneration
//
// Query parameters mirror the CLI flags: units, angle, rigidity, seed, label,
// comment, style, width, height, yaw, pitch, zoom, radius. Every response
// carries an X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/polymer/pkg/pipeline"
)

// Defaults for http.Server timeouts.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 60 * time.Second
	shutdownTimeout     = 15 * time.Second
)

// Server serves the polymer HTTP API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	router   chi.Router

	readTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options used for query parameters a request omits.
func WithDefaults(o pipeline.Options) Option { return func(s *Server) { s.defaults = o } }

// WithReadTimeout sets the http.Server read timeout.
func WithReadTimeout(d time.Duration) Option { return func(s *Server) { s.readTimeout = d } }

// New creates a server that renders through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
		defaults: pipeline.Options{
			Units:    pipeline.DefaultUnits,
			Angle:    pipeline.DefaultAngle,
			Rigidity: pipeline.DefaultRigidity,
			Style:    pipeline.DefaultStyle,
		},
		readTimeout: DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebsocket)

	r.Route("/api", func(r chi.Router) {
		r.Get("/chain", s.handleChain)
		r.Get("/chain.json", s.handleChainJSON)
		r.Get("/chain.msgpack", s.handleRender(pipeline.FormatMsgpack))
		r.Get("/download", s.handleDownload)
		r.Get("/render.svg", s.handleRender(pipeline.FormatSVG))
		r.Get("/render.png", s.handleRender(pipeline.FormatPNG))
		r.Get("/render.pdf", s.handleRender(pipeline.FormatPDF))
		r.Get("/bonds.svg", s.handleRender(pipeline.FormatBonds))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Error: "no route for " + r.URL.Path})
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.readTimeout,
		ReadTimeout:       s.readTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}
