package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

const readHeaderTimeout = 10 * time.Second

// Server is the hub simulator HTTP server.
type Server struct {
	httpServer *http.Server
}

// New creates a server for handler on addr.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// ListenAndServe listens on the configured address and serves until
// Shutdown. It returns nil after a graceful shutdown.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve serves on l until Shutdown. It returns nil after a graceful
// shutdown.
func (s *Server) Serve(l net.Listener) error {
	if err := s.httpServer.Serve(l); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ListenAndServeTLS is ListenAndServe over TLS. cfg supplies the
// certificates, typically through GetCertificate.
func (s *Server) ListenAndServeTLS(cfg *tls.Config) error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.ServeTLS(l, cfg)
}

// ServeTLS serves TLS connections accepted on l until Shutdown.
func (s *Server) ServeTLS(l net.Listener, cfg *tls.Config) error {
	return s.Serve(tls.NewListener(l, cfg))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
