// Package server assembles the HTTP server: routes, middleware, background
// runners, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/cardloop/cardloop/internal/profile"
	"github.com/cardloop/cardloop/server/middleware"
	apiv1 "github.com/cardloop/cardloop/server/router/api/v1"
	"github.com/cardloop/cardloop/server/runner/statsdigest"
	"github.com/cardloop/cardloop/server/service/dashboard"
	"github.com/cardloop/cardloop/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo

	// runnerCancel stops background runners on shutdown.
	runnerCancel context.CancelFunc
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Profile: profile,
		Store:   store,
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	s.echoServer = echoServer

	echoServer.Use(middleware.RequestLogger())
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.TimeoutWithConfig(echomiddleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiV1Service := apiv1.NewAPIV1Service(profile, store)
	apiV1Service.RegisterRoutes(echoServer)

	return s, nil
}

// Start launches the HTTP listener and the background runners.
func (s *Server) Start(ctx context.Context) error {
	runnerCtx, cancel := context.WithCancel(ctx)
	s.runnerCancel = cancel
	s.startBackgroundRunners(runnerCtx)

	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))

	go func() {
		if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", slog.Any("error", err))
		}
	}()

	return nil
}

// Shutdown stops runners first, then drains in-flight HTTP requests.
func (s *Server) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.runnerCancel != nil {
		s.runnerCancel()
	}

	if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", slog.Any("error", err))
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.Any("error", err))
	}

	slog.Info("server stopped")
}

func (s *Server) startBackgroundRunners(ctx context.Context) {
	digestRunner := statsdigest.NewRunner(s.Store, dashboard.NewService(s.Store), s.Profile.Location())
	go digestRunner.Run(ctx)
}

// GetEcho exposes the underlying echo instance for tests.
func (s *Server) GetEcho() *echo.Echo {
	return s.echoServer
}
