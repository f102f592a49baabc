package api

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/luca-patrignani/organ-ledger/application"
)

// Server serves the ledger API.
type Server struct {
	server    *http.Server
	tlsConfig *tls.Config
	logger    *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(Server) Server

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s Server) Server {
		s.logger = logger
		return s
	}
}

// WithCertificate serves over TLS with cert.
func WithCertificate(cert tls.Certificate) ServerOption {
	return func(s Server) Server {
		if s.tlsConfig == nil {
			s.tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		s.tlsConfig.Certificates = append(s.tlsConfig.Certificates, cert)
		return s
	}
}

// WithReadTimeout bounds the time spent reading a request.
func WithReadTimeout(timeout time.Duration) ServerOption {
	return func(s Server) Server {
		s.server.ReadTimeout = timeout
		return s
	}
}

// NewServer builds a server for svc.
func NewServer(svc *application.Service, opts ...ServerOption) *Server {
	s := Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		s = opt(s)
	}
	s.server.Handler = Handler(svc, s.logger)
	return &s
}

// Handler returns the routes of the API without a server around them.
func Handler(svc *application.Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	handlers{svc: svc, logger: logger}.register(mux)
	return mux
}

// TLS reports whether the server was configured with a certificate.
func (s *Server) TLS() bool {
	return s.tlsConfig != nil
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	if s.tlsConfig != nil {
		l = tls.NewListener(l, s.tlsConfig)
	}
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for active requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
