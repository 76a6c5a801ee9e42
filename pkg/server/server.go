package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
)

// ClientCookie names the cookie carrying the browser's client id.
const ClientCookie = "micro_client"

// MountFunc builds the application inside a new session's document. It runs
// on the session goroutine before the first render.
type MountFunc func(s *Session) error

// Server is the HTTP/WebSocket server mirroring session documents.
type Server struct {
	mount    MountFunc
	config   Config
	router   chi.Router
	upgrader websocket.Upgrader
	metrics  *metrics
	tracer   trace.Tracer
	logger   *slog.Logger

	// ctx is cancelled on Shutdown and parents every session context.
	ctx    context.Context
	cancel context.CancelFunc

	// mu guards sessions, closing and httpServer. closing is set once by
	// Shutdown; no session is added to wg after that.
	mu         sync.Mutex
	closing    bool
	sessions   map[string]*Session
	wg         sync.WaitGroup
	httpServer *http.Server
}

// New creates a server that mounts every session with mount.
func New(mount MountFunc, config Config) *Server {
	config = config.withDefaults()
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
		config.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		mount:  mount,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		metrics:  newMetrics(config.Registry, "micro"),
		tracer:   newTracer(config.TracerName),
		logger:   config.Logger.With("component", "server"),
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.servePage)
	r.Get("/client.js", s.serveClient)
	r.Head("/client.js", s.serveClient)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves on Config.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every session and stops the HTTP server. It waits for
// session goroutines until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	srv := s.httpServer
	s.mu.Unlock()
	s.cancel()

	var err error
	if srv != nil {
		if err = srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	if err == nil {
		s.logger.Info("server shutdown complete")
	}
	return err
}

// clientID returns the request's client id and whether it was newly made.
func clientID(r *http.Request) (string, bool) {
	if c, err := r.Cookie(ClientCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value, false
		}
	}
	return uuid.NewString(), true
}

func clientCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.shuttingDown() {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}

	id, fresh := clientID(r)
	header := http.Header{}
	if fresh {
		header.Add("Set-Cookie", clientCookie(id).String())
	}

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn, id)
	if !s.track(sess) {
		// Shutdown started during the handshake.
		sess.cancel()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}
	defer s.untrack(sess)

	sess.run()
}

func (s *Server) shuttingDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

// track registers sess with the server. It reports false once Shutdown has
// started.
func (s *Server) track(sess *Session) bool {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.metrics.sessionsTotal.Inc()
	s.metrics.activeSessions.Inc()
	return true
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	s.metrics.activeSessions.Dec()
	s.wg.Done()
}
