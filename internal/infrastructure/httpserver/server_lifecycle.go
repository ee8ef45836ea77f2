package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func (s *Server) addr() string {
	return net.JoinHostPort(s.config.Host, s.config.Port)
}

// Start blocks until the server stops. A graceful Shutdown is not reported as an error.
func (s *Server) Start() error {
	s.LogMetricsInitialization()

	addr := s.addr()
	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	entry := s.logger.WithFields(logrus.Fields{"addr": addr, "environment": s.config.Environment})
	var err error
	if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		entry.Info("Starting HTTPS server")
		err = s.echo.StartTLS(addr, s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		entry.Info("Starting HTTP server")
		if s.config.Environment == "production" {
			s.logger.Warn("Running in HTTP mode - TLS certificates not configured")
		}
		err = s.echo.StartServer(server)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
