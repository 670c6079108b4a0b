package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	return &server{
		httpServer: newHTTPServer(handler, cfg),
		logger:     logger,
	}, nil
}

// NotifyContext returns a context cancelled on SIGTERM, SIGINT or SIGQUIT.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
}

func (s *server) Run(ctx context.Context) error {
	listener, err := s.httpServer.listen()
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.httpServer.server.Addr, err)
	}
	return s.Serve(ctx, listener)
}

func (s *server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info().Str("address", listener.Addr().String()).Msg("Launching HTTP server")

	served := make(chan error, 1)
	go func() {
		served <- s.httpServer.serve(listener)
	}()

	select {
	case err := <-served:
		if err != nil {
			return fmt.Errorf("HTTP server Serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP server")
	if err := s.httpServer.shutdown(); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	if err := <-served; err != nil {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
