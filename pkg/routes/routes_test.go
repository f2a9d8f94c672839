package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/plugins"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	"github.com/Ramsey-B/fern/pkg/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureFetcher map[string]string

func (f fixtureFetcher) GetPage(_ context.Context, url string) ([]byte, error) {
	fixture, ok := f[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotFound, url)
	}
	raw, err := os.ReadFile(filepath.Join("..", "parser", "testdata", fixture))
	if err != nil {
		return nil, err
	}
	return []byte(`<script id="__NEXT_DATA__" type="application/json">` + string(raw) + `</script>`), nil
}

func newTestServer() *echo.Echo {
	logger := ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
	fetcher := fixtureFetcher{
		"https://www.imdb.com/title/tt0133093/reference":    "title_movie.json",
		"https://www.imdb.com/it/title/tt0133093/reference": "title_movie.json",
	}
	p := parser.New(parser.WithChain(plugins.NewChain()), parser.WithLogger(logger))
	svc := service.New(service.Config{}, fetcher, nil, p, logger)

	checker := health.NewChecker("test")
	checker.SetReady(true)

	return New(Options{AppName: "fern", Logger: logger, Service: svc, Health: checker})
}

func request(e *echo.Echo, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_GetTitle(t *testing.T) {
	e := newTestServer()

	rec := request(e, "/titles/tt0133093", map[string]string{echo.HeaderXRequestID: "req-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))

	var body struct {
		Variant string         `json:"variant"`
		Record  map[string]any `json:"record"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The Matrix", body.Record["title"])
	assert.Equal(t, "en", body.Record["locale"])
}

func TestServer_Locale(t *testing.T) {
	e := newTestServer()

	rec := request(e, "/titles/tt0133093?locale=it", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locale":"it"`)

	rec = request(e, "/titles/tt0133093", map[string]string{middleware.HeaderLocale: "it"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locale":"it"`)
}

func TestServer_Errors(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		target string
		code   int
	}{
		{target: "/titles/tt0000001", code: http.StatusNotFound},
		{target: "/titles/garbage", code: http.StatusBadRequest},
		{target: "/search", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := request(e, tt.target, map[string]string{echo.HeaderXRequestID: "req-2"})
		assert.Equal(t, tt.code, rec.Code, tt.target)

		var body middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "req-2", body.RequestID)
		assert.NotEmpty(t, body.Message)
	}
}

func TestServer_HealthAndMetrics(t *testing.T) {
	e := newTestServer()

	assert.Equal(t, http.StatusOK, request(e, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, request(e, "/healthz/ready", nil).Code)

	request(e, "/titles/tt0133093", nil)
	rec := request(e, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fern_")
}

func TestOperational_HasNoAPI(t *testing.T) {
	logger := ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
	e := NewOperational(Options{AppName: "fern", Logger: logger, Health: health.NewChecker("test")})

	assert.Equal(t, http.StatusOK, request(e, "/healthz/live", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, request(e, "/healthz/ready", nil).Code)
	assert.Equal(t, http.StatusNotFound, request(e, "/titles/tt0133093", nil).Code)
}
