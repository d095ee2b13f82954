package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// ServerConfig holds listener, timeout and housekeeping settings
type ServerConfig struct {
	Host            string
	Port            int // 0 picks a free port
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// SessionSweep is how often expired coach sessions are dropped; 0 disables it
	SessionSweep time.Duration
}

// DefaultServerConfig returns sensible defaults for server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:            8080,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
		SessionSweep:    10 * time.Minute,
	}
}

// SessionSweeper drops expired sessions and reports how many went
type SessionSweeper interface {
	CleanExpiredSessions() int
}

// Server serves the JSON API and the lineup editor from one listener and
// sweeps stale coach sessions while it runs
type Server struct {
	http     *http.Server
	logger   *slog.Logger
	config   ServerConfig
	sessions SessionSweeper

	ready chan struct{}
	addr  string
}

// NewServer creates a server for handler. sessions may be nil.
func NewServer(handler http.Handler, config ServerConfig, sessions SessionSweeper, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
			Handler:           handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		logger:   logger,
		config:   config,
		sessions: sessions,
		ready:    make(chan struct{}),
	}
}

// Run binds the listener and serves until ctx is cancelled, then gives
// in-flight edits ShutdownTimeout to finish
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	s.addr = ln.Addr().String()
	close(s.ready)

	s.logger.Info("courtside listening", slog.String("addr", s.addr))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		s.sweepSessions(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("draining requests", slog.Duration("timeout", s.config.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	s.logger.Info("courtside stopped")
	return err
}

// Ready is closed once the listener is bound
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address once Ready is closed, the configured one before
func (s *Server) Addr() string {
	select {
	case <-s.ready:
		return s.addr
	default:
		return s.http.Addr
	}
}

func (s *Server) sweepSessions(ctx context.Context) {
	if s.sessions == nil || s.config.SessionSweep <= 0 {
		return
	}
	ticker := time.NewTicker(s.config.SessionSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.CleanExpiredSessions(); n > 0 {
				s.logger.Debug("expired coach sessions removed", slog.Int("count", n))
			}
		}
	}
}
