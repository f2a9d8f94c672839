package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/routes"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

// version is set at build time
var version = "dev"

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve title, person and search lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup(cmd.Context())
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			checker := health.NewChecker(version)
			var store cache.Store

			s := startup.New(logger, cfg.StartupMaxAttempts)
			s.AddDependency(&startup.Func{
				Name: "cache",
				StartFunc: func(context.Context) error {
					var err error
					store, _, err = newStore(cfg, logger)
					if err != nil {
						return err
					}
					if redisStore, ok := store.(*cache.RedisStore); ok {
						checker.AddCheck("redis", redisStore, true)
					}
					return nil
				},
				StopFunc: func(context.Context) error {
					if closer, ok := store.(interface{ Close() error }); ok {
						return closer.Close()
					}
					return nil
				},
			})

			var server *http.Server
			s.AddDependency(&startup.Func{
				Name:     "http",
				Requires: []string{"cache"},
				StartFunc: func(c context.Context) error {
					svc, err := ctx.newService(c, store)
					if err != nil {
						return err
					}
					e := routes.New(routes.Options{
						AppName: cfg.AppName,
						Logger:  logger,
						Service: svc,
						Health:  checker,
					})
					server = newHTTPServer(cfg, e)
					go listen(server, logger, stop)
					return nil
				},
				StopFunc: func(c context.Context) error {
					return server.Shutdown(c)
				},
			})

			return run(runCtx, s, checker, logger)
		},
	}
}

func newHTTPServer(cfg *config.Config, e *echo.Echo) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
	}
}

// listen serves until the server is shut down. A failure to listen stops
// the process.
func listen(server *http.Server, logger ectologger.Logger, stop context.CancelFunc) {
	logger.Infof("HTTP server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("HTTP server failed")
		stop()
	}
}

// run starts every dependency, waits for ctx to end and stops them again.
func run(ctx context.Context, s *startup.Startup, checker *health.Checker, logger ectologger.Logger) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	checker.SetReady(true)
	logger.Info("fern is ready")

	<-ctx.Done()
	checker.SetReady(false)
	logger.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(stopCtx)
}
