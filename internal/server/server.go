package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/discovery"
	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/session"
	"github.com/muurk/autodm/internal/version"
)

// DefaultShutdownTimeout bounds how long Shutdown waits for connections to drain
const DefaultShutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host string
	Port int

	// Advertise announces the server over mDNS as Instance
	Advertise bool
	Instance  string

	ShutdownTimeout time.Duration
}

// Server exposes one configuration session over HTTP and WebSocket.
type Server struct {
	config Config
	hub    *Hub
	posts  []catalog.Post
	bot    string

	httpServer *http.Server
	advert     *discovery.Advertisement
	addr       net.Addr

	baseCtx      context.Context
	cancelHub    context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.Mutex
	shutdownOnce sync.Once
}

// New creates a server around sess. The server becomes the session's only user.
func New(config Config, sess *session.Session) *Server {
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Server{
		config:  config,
		hub:     NewHub(sess),
		posts:   sess.Store().Posts(),
		bot:     sess.BotName(),
		baseCtx: context.Background(),
	}
}

// Start listens on the configured address and blocks until SIGINT, SIGTERM,
// ctx cancellation or a fatal error.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hubCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.addr = ln.Addr()
	s.baseCtx = hubCtx
	s.cancelHub = cancel
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Unlock()

	go s.hub.Run(hubCtx)

	logging.Info("Preview server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("version", version.Full()),
	)

	if s.config.Advertise {
		port := s.config.Port
		if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
			port = tcp.Port
		}
		advert, err := discovery.Advertise(discovery.AdvertiseOptions{
			Instance: s.config.Instance,
			Port:     port,
			Version:  version.Get().Version,
			BotName:  s.bot,
		})
		if err != nil {
			// The server is still usable by address
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.mu.Lock()
			s.advert = advert
			s.mu.Unlock()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, done := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer done()
		return s.Shutdown(shutdownCtx)

	case err := <-errCh:
		_ = s.Shutdown(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server failed: %w", err)
	}
}

// Addr returns the listening address once Serve has started
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.shutdown(ctx)
	})
	return err
}

func (s *Server) shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.mu.Lock()
	advert, httpServer, cancel := s.advert, s.httpServer, s.cancelHub
	s.mu.Unlock()

	advert.Shutdown()

	var err error
	if httpServer != nil {
		// Stops the listener and waits for plain HTTP requests
		if shutdownErr := httpServer.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("failed to stop HTTP server: %w", shutdownErr)
		}
	}

	// Hijacked WebSocket connections are closed by the hub on cancellation
	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return err
}
