package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkit/internal/logging"
	"github.com/dmitrijs2005/authkit/internal/server/auth"
	"github.com/dmitrijs2005/authkit/internal/server/sessions"
	"github.com/labstack/echo/v4"
)

// Server owns the echo instance and its route table.
type Server struct {
	e      *echo.Echo
	addr   string
	logger logging.Logger
}

// NewServer wires the routes: health and the auth endpoints under /api,
// with /api/me behind the access-token middleware.
func NewServer(addr string, handler *AuthHandler, issuer *auth.Issuer, store sessions.Store, logger logging.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/health", handler.Health)

	api := e.Group("/api")
	api.POST("/register", handler.Register)
	api.POST("/login", handler.Login)
	api.POST("/refresh", handler.Refresh)
	api.POST("/logout", handler.Logout)
	api.POST("/federated", handler.Federated)

	protected := e.Group("/api")
	protected.Use(AccessAuth(issuer, store))
	protected.GET("/me", handler.Me)

	return &Server{e: e, addr: addr, logger: logger}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server started", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.e.Shutdown(shutdownCtx)
}
