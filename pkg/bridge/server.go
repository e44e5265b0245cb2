package bridge

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/navrouter/pkg/middleware"
	"github.com/vango-dev/navrouter/pkg/router"
	"github.com/vango-dev/navrouter/pkg/routestate"
)

//go:embed client.js
var clientScript []byte

// Config configures a bridge Server.
type Config struct {
	// Path is the WebSocket endpoint (default: "/ws").
	Path string

	// AllowedOrigins lists origins allowed to connect. Empty allows only
	// same-origin connections.
	AllowedOrigins []string

	// HandshakeTimeout bounds the wait for the hello message (default: 10s).
	HandshakeTimeout time.Duration

	// WriteTimeout bounds each command write (default: 5s).
	WriteTimeout time.Duration

	// EnableMetrics serves Prometheus metrics at /metrics.
	EnableMetrics bool

	// NavigatorOptions are applied to every session navigator.
	NavigatorOptions []router.NavigatorOption

	// OnSession is called once a session's store holds the browser location.
	OnSession func(*Session)

	// Logger receives bridge logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Session is one connected browser.
type Session struct {
	ID         string
	History    *Remote
	Dispatcher *routestate.Dispatcher
	Store      *routestate.Store
	Navigator  *router.Navigator

	done chan struct{}
}

// Done is closed when the browser disconnects.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Server accepts bridge connections.
type Server struct {
	config   Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	mux      chi.Router

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a bridge server.
func New(config Config) *Server {
	if config.Path == "" {
		config.Path = "/ws"
	}
	if config.HandshakeTimeout <= 0 {
		config.HandshakeTimeout = 10 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   config,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get(config.Path, s.handleWebSocket)
	r.Get("/navrouter.js", s.handleClientScript)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if config.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	s.mux = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Session returns the connected session with the given id.
func (s *Server) Session(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.config.AllowedOrigins) == 0 {
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
	return slices.Contains(s.config.AllowedOrigins, origin)
}

func (s *Server) handleClientScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = w.Write(clientScript)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		middleware.RecordWebSocketError("upgrade")
		s.logger.Warn("bridge upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess, err := s.handshake(conn)
	if err != nil {
		middleware.RecordWebSocketError("handshake")
		s.logger.Warn("bridge handshake failed", "error", err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "handshake failed"))
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	middleware.RecordBridgeSessionOpen()
	log := s.logger.With("session_id", sess.ID)
	log.Info("bridge session opened", "url", sess.Store.URL())

	defer func() {
		sess.History.close()
		sess.Dispatcher.Unmount(sess.Store)
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		middleware.RecordBridgeSessionClose()
		close(sess.done)
		log.Info("bridge session closed")
	}()

	if s.config.OnSession != nil {
		s.config.OnSession(sess)
	}

	s.readLoop(conn, sess, log)
}

// handshake waits for the hello message and builds the session.
func (s *Server) handshake(conn *websocket.Conn) (*Session, error) {
	_ = conn.SetReadDeadline(time.Now().Add(s.config.HandshakeTimeout))
	var hello Message
	if err := conn.ReadJSON(&hello); err != nil {
		return nil, fmt.Errorf("read hello: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})
	if hello.Op != OpHello {
		return nil, fmt.Errorf("expected %q, got %q", OpHello, hello.Op)
	}
	middleware.RecordBridgeMessage("in", string(hello.Op))

	remote, err := newRemote(conn, hello, s.config.WriteTimeout)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := s.logger.With("session_id", id)
	dispatcher := routestate.NewDispatcher(remote, routestate.WithLogger(log))
	store := routestate.NewStore()
	dispatcher.Mount(store)
	dispatcher.UpdateRoute()

	opts := append([]router.NavigatorOption{router.WithLogger(log)}, s.config.NavigatorOptions...)
	return &Session{
		ID:         id,
		History:    remote,
		Dispatcher: dispatcher,
		Store:      store,
		Navigator:  router.NewNavigator(remote, dispatcher, opts...),
		done:       make(chan struct{}),
	}, nil
}

func (s *Server) readLoop(conn *websocket.Conn, sess *Session, log *slog.Logger) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				middleware.RecordWebSocketError("read")
				log.Warn("bridge read failed", "error", err)
			}
			return
		}
		middleware.RecordBridgeMessage("in", string(msg.Op))

		switch msg.Op {
		case OpPop:
			if err := sess.History.observe(msg); err != nil {
				log.Warn("ignoring pop with bad url", "url", msg.URL, "error", err)
				continue
			}
			sess.Dispatcher.UpdateRoute()
		case OpLength:
			sess.History.observeLength(msg.Length)
		default:
			log.Debug("ignoring bridge message", "op", msg.Op)
		}
	}
}

// Navigate pushes target in the browser of session id.
func (s *Server) Navigate(ctx context.Context, id, target string) error {
	sess, ok := s.Session(id)
	if !ok {
		return ErrNoClient
	}
	return sess.Navigator.NavigateTo(ctx, target)
}
