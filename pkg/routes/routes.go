// Package routes assembles the fern HTTP API.
package routes

import (
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	"github.com/Ramsey-B/fern/pkg/routes/imdb"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

type Options struct {
	AppName string
	Logger  ectologger.Logger
	Service imdb.Service
	Health  *health.Checker
}

// New builds the echo instance serving the API, health checks and metrics.
func New(opts Options) *echo.Echo {
	e := NewOperational(opts)
	imdb.NewHandlers(opts.Service).RegisterRoutes(e.Group(""))
	return e
}

// NewOperational builds an echo instance serving only health checks and
// metrics, as the worker does. opts.Service is not used.
func NewOperational(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.Error(opts.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(otelecho.Middleware(opts.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(opts.Logger))

	if opts.Health != nil {
		opts.Health.RegisterRoutes(e)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
