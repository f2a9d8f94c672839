package middleware

import (
	"github.com/Ramsey-B/fern/pkg/requestctx"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderLocale is the header key for the requested site locale
	HeaderLocale = "X-Locale"
	// QueryLocale overrides HeaderLocale
	QueryLocale = "locale"
)

func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			// get request id from header
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			locale := c.QueryParam(QueryLocale)
			if locale == "" {
				locale = req.Header.Get(HeaderLocale)
			}

			ctx := req.Context()
			ctx = requestctx.SetRequestID(ctx, requestID)
			ctx = requestctx.SetMethod(ctx, req.Method)
			ctx = requestctx.SetRoute(ctx, req.URL.Path)
			ctx = requestctx.SetRemoteIP(ctx, c.RealIP())
			ctx = requestctx.SetReferer(ctx, req.Referer())
			ctx = requestctx.SetLocale(ctx, locale)

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
