// Package server exposes the indicator engine over HTTP.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/session"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// Server serves the indicator endpoints. It owns its session store and metrics
// registry, so several servers can run in one process.
type Server struct {
	config   Config
	engine   *engine.Engine
	source   datasource.BarSource
	sessions *session.Manager
	metrics  *metrics.Metrics
	log      *logger.Logger
	router   *mux.Router

	mu        sync.RWMutex
	listener  net.Listener
	ready     chan struct{}
	readyOnce sync.Once
}

// NewServer creates a server. source may be nil, in which case /v1/bundle answers
// 503.
func NewServer(config Config, eng *engine.Engine, source datasource.BarSource, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}

	if eng == nil {
		eng = engine.NewEngine(nil, log)
	}

	s := &Server{
		config:   config,
		engine:   eng,
		source:   source,
		sessions: session.NewManager(config.MaxSessions, log),
		metrics:  metrics.NewMetrics(prometheus.NewRegistry()),
		log:      log,
		router:   mux.NewRouter(),
		listener: nil,
		ready:    make(chan struct{}),
	}

	s.sessions.OnTeardown(func(session.Session) {
		s.metrics.SessionsTorndown.Inc()
	})

	s.routes()

	return s
}

func (s *Server) routes() {
	s.router.Use(s.recoverMiddleware, s.corsMiddleware, s.observeMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/compute", s.handleCompute).Methods(http.MethodPost)
	v1.HandleFunc("/bundle", s.handleBundle).Methods(http.MethodGet)
	v1.HandleFunc("/schema", s.handleSchema).Methods(http.MethodGet)
	v1.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	v1.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}", s.handleReplaceSession).Methods(http.MethodPut)
	v1.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)

	s.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// Handler returns the routed handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the server's session store.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Ready is closed once the first ListenAndServe is accepting connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Address returns the listen address, empty before ListenAndServe starts.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully and tears
// down every stored session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to listen on %s", s.config.Addr)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	s.log.Info("Indicator server listening", zap.String("address", listener.Addr().String()))
	s.readyOnce.Do(func() { close(s.ready) })

	defer s.sessions.Close()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		s.log.Info("Shutting down indicator server")

		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}
