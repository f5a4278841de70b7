package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/marquee/internal/config"
	"github.com/muurk/marquee/internal/input"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address, for example ":8765".
	Addr string

	// CertPath and KeyPath enable TLS when both are set.
	CertPath string
	KeyPath  string

	// Name identifies this cabinet to clients.
	Name string
}

// ConfigFromSettings converts the remote settings section.
func ConfigFromSettings(s config.RemoteSettings) Config {
	return Config{
		Addr:     s.Addr,
		CertPath: s.CertFile,
		KeyPath:  s.KeyFile,
		Name:     s.Name,
	}
}

// Injector receives raw key names from remote clients. *input.Sampler
// satisfies it.
type Injector interface {
	Inject(raw string) bool
}

// Server is the remote-control and secondary-display server. Clients
// connect to /ws, send key commands and receive a Frame on every change.
type Server struct {
	config    Config
	logger    *zap.Logger
	injector  Injector
	keymap    *input.KeyMap
	tlsConfig *tls.Config
	upgrader  websocket.Upgrader

	listener net.Listener
	http     *http.Server

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	wg      sync.WaitGroup
}

// New creates a server. keymap translates action names into raw keys.
func New(cfg Config, injector Injector, keymap *input.KeyMap, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keymap == nil {
		keymap = input.DefaultKeyMap()
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		injector: injector,
		keymap:   keymap,
		clients:  make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}

	if cfg.CertPath != "" || cfg.KeyPath != "" {
		tlsConfig, err := NewTLSConfig(cfg.CertPath, cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
		s.tlsConfig = tlsConfig
	}
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/keys", s.handleKeys)
	return mux
}

// Listen opens the listening socket. It is separate from Serve so callers
// learn the bound port before serving.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}
	s.listener = ln
	s.logger.Info("Remote server listening",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("tls", s.tlsConfig != nil),
	)
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound TCP port, or 0 before Listen.
func (s *Server) Port() int {
	if tcp, ok := s.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Serve handles connections until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.http.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting connections and closes every client.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down remote server")
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}

	s.mu.Lock()
	for c := range s.clients {
		c.close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Debug("All remote clients closed")
	case <-ctx.Done():
		s.logger.Warn("Shutdown timeout, forcing close")
	}
	return err
}

// ActiveClients returns the number of connected websocket clients.
func (s *Server) ActiveClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// register adds a client and queues the last frame so it draws immediately.
func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
	if s.last != nil {
		c.offer(s.last)
	}
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}
