package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"portfolio3d/internal/content"
	"portfolio3d/internal/metrics"
)

// Server runs the debug router on its own goroutine.
type Server struct {
	log  zerolog.Logger
	srv  *http.Server
	ln   net.Listener
	done chan struct{}
}

// Start listens on addr and serves h in the background. It returns once the listener is bound,
// so Addr is valid immediately (":0" picks a free port).
func Start(log zerolog.Logger, addr string, h http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("httpapi: listen %s: %w", addr, err)
	}
	s := &Server{
		log: log,
		srv: &http.Server{
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:   ln,
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		log.Info().Str("addr", ln.Addr().String()).Msg("debug server listening")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("debug server error")
		}
	}()
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	select {
	case <-s.done:
	case <-ctx.Done():
	}
	s.log.Info().Msg("debug server stopped")
	return err
}

// Debug is the viewer's optional debug endpoint: the router, its event hub and the server.
type Debug struct {
	Hub *Hub
	srv *Server
}

// StartDebug serves the debug router with a fresh event hub on addr. On error nothing is left
// running and the caller can carry on without debug tooling.
func StartDebug(log zerolog.Logger, addr string, m *metrics.Metrics, items []content.Item) (*Debug, error) {
	hub := NewHub(log)
	srv, err := Start(log, addr, NewHandler(log, m, items, hub).Router())
	if err != nil {
		return nil, err
	}
	return &Debug{Hub: hub, srv: srv}, nil
}

// Addr returns the bound address.
func (d *Debug) Addr() string {
	return d.srv.Addr()
}

// Shutdown disconnects event subscribers, then stops the server. Hijacked websocket connections
// are not tracked by http.Server. Nil-safe.
func (d *Debug) Shutdown(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.Hub.Close()
	return d.srv.Shutdown(ctx)
}
