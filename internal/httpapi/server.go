package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"logwatch/internal/logging"
	"logwatch/internal/stream"
)

// Hub is the viewer registry the server streams from.
type Hub interface {
	stream.Registry
	Count() int
}

// PositionSource reports the tailer cursor for /health.
type PositionSource interface {
	Position() int64
}

// Options wires the server's collaborators.
type Options struct {
	Bind      string
	WatchFile string
	Hub       Hub
	Position  PositionSource
	Snapshot  stream.SnapshotFunc
	Heartbeat time.Duration
	Logger    *slog.Logger
}

// Server serves the viewer HTTP surface.
type Server struct {
	bind      string
	watchFile string
	hub       Hub
	position  PositionSource
	snapshot  stream.SnapshotFunc
	heartbeat time.Duration
	base      *slog.Logger
	logger    *slog.Logger

	handler    http.Handler
	listener   net.Listener
	server     *http.Server
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New builds a server. Start must be called to begin listening.
func New(opts Options) (*Server, error) {
	if opts.Hub == nil {
		return nil, errors.New("httpapi: hub is required")
	}
	bind := strings.TrimSpace(opts.Bind)
	if bind == "" {
		return nil, errors.New("httpapi: bind address is required")
	}
	s := &Server{
		bind:      bind,
		watchFile: opts.WatchFile,
		hub:       opts.Hub,
		position:  opts.Position,
		snapshot:  opts.Snapshot,
		heartbeat: opts.Heartbeat,
		base:      opts.Logger,
		logger:    logging.NewComponentLogger(opts.Logger, "httpapi"),
	}
	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())
	s.handler = s.routes()
	s.server = &http.Server{
		Handler:           s.handler,
		BaseContext:       func(net.Listener) context.Context { return s.baseCtx },
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/log", s.handleIndex)
	r.Get("/events", s.handleEvents)
	r.Get("/health", s.handleHealth)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the bind address and serves until ctx ends or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr reports the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop ends open event streams and shuts the server down, giving other
// in-flight requests a short grace period.
func (s *Server) Stop() {
	s.cancelBase()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		_ = s.server.Close()
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Debug("request served",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.Status()),
				logging.Int("bytes", ww.BytesWritten()),
				logging.Duration("elapsed", time.Since(start)),
				logging.String("request_id", middleware.GetReqID(r.Context())),
				logging.String("remote", r.RemoteAddr),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
