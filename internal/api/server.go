package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/api/handler"
	"github.com/vfg2006/adsync-api/internal/api/handler/router"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	integrator integration.Integrator,
	authenticator authenticating.Authenticator,
	maintenance handler.MaintenanceRunner,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.OAuth(integrator)...),
		router.WithRoutes(handler.Connections(integrator)...),
		router.WithRoutes(handler.AccountData(integrator)...),
		router.WithRoutes(handler.Snapshots(integrator)...),
		router.WithRoutes(handler.Audit(integrator)...),
		router.WithRoutes(handler.Maintenance(maintenance)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Run bloqueia até um sinal de término ou o cancelamento de ctx
func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("api: server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("api: server stopped with error")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("api: interrupt signal received")
	case <-ctx.Done():
		logrus.Info("api: application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("api: graceful shutdown started")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("api: shutdown failed")
		return err
	}

	logrus.Info("api: server stopped")
	return nil
}
