package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snake3d/internal/config"
	"github.com/vovakirdan/snake3d/internal/storage"
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Addr is the host:port to listen on (e.g., ":8080").
	Addr string

	// FPS is the frame rate of each client loop.
	FPS int

	// Snake is the base game configuration. Clients pick a preset with
	// ?difficulty= and it is applied on top of this.
	Snake config.SnakeConfig

	// Preset is used when the client does not ask for one.
	Preset config.DifficultyPreset

	// Seed fixes every client's food sequence. Zero seeds each client
	// from the clock.
	Seed int64

	// Store records finished runs. Nil disables score saving.
	Store *storage.Store

	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:   ":8080",
		FPS:    60,
		Snake:  config.DefaultSnakeConfig(),
		Preset: config.DifficultyNormal,
	}
}

// Server accepts WebSocket clients on /ws and runs one session per client.
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *log.Logger

	// ctx is cancelled on shutdown and stops every client loop.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	clients map[string]*client
}

// NewServer creates a server. Call Handler to mount it or ListenAndServe
// to run it standalone.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Preset == "" {
		cfg.Preset = config.DifficultyNormal
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Browser front end may be served from anywhere
			},
		},
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[string]*client),
	}
}

// Handler returns the HTTP routes: /ws for games and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "ok %d\n", s.ClientCount())
	})
	return mux
}

// handleWS upgrades the connection and plays one session until the
// client leaves or the server shuts down.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	codec, err := ParseCodec(q.Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	preset := s.config.Preset
	if name := q.Get("difficulty"); name != "" {
		preset, err = config.ParsePreset(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	snake := s.config.Snake
	config.ApplySnakePreset(&snake, preset)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := newClient(clientOptions{
		conn:   conn,
		codec:  codec,
		snake:  snake,
		preset: preset,
		seed:   seed,
		fps:    s.config.FPS,
		store:  s.config.Store,
		logger: s.logger,
	})

	s.wg.Add(1)
	defer s.wg.Done()
	s.register(c)
	defer s.unregister(c)

	s.logger.Info("client connected",
		"client", c.id,
		"remote", r.RemoteAddr,
		"preset", preset,
		"codec", codec.Name(),
	)

	go c.writePump()
	go c.readPump()
	c.start()
	c.loop(s.ctx)

	s.logger.Info("client disconnected", "client", c.id, "runs", c.session.Runs())
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c.id)
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.cancel()
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	if closeErr := s.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Close disconnects every client and waits for their loops to finish.
// Hijacked WebSocket connections are not tracked by http.Server.Shutdown,
// so this is needed in addition to it.
func (s *Server) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}
