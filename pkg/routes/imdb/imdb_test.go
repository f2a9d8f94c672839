package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	calls []string
}

func (f *fakeService) GetTitle(_ context.Context, id string) (models.TitleRecord, error) {
	f.calls = append(f.calls, "title:"+id)
	if id == "tt0000001" {
		return nil, errors.ErrNotFound
	}
	return &models.Title{Title: "The Matrix"}, nil
}

func (f *fakeService) SearchTitle(_ context.Context, query string) (*models.SearchResult, error) {
	f.calls = append(f.calls, "search:"+query)
	return &models.SearchResult{}, nil
}

func (f *fakeService) GetPerson(_ context.Context, id string) (*models.PersonDetail, error) {
	f.calls = append(f.calls, "person:"+id)
	return &models.PersonDetail{Name: "Keanu Reeves"}, nil
}

func (f *fakeService) GetSeasonEpisodes(_ context.Context, seriesID string, season int) (*models.EpisodeListing, error) {
	f.calls = append(f.calls, fmt.Sprintf("season:%s/%d", seriesID, season))
	return &models.EpisodeListing{SeasonNumber: season}, nil
}

func (f *fakeService) GetAllEpisodes(_ context.Context, seriesID string) ([]models.BulkEpisode, error) {
	f.calls = append(f.calls, "episodes:"+seriesID)
	return []models.BulkEpisode{}, nil
}

func (f *fakeService) ParseDocument(_ context.Context, docType parser.DocumentType, document any) (any, error) {
	f.calls = append(f.calls, "parse:"+string(docType))
	return document, nil
}

func serve(t *testing.T, svc Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, errors.ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, errors.ErrInvalidInput):
			code = http.StatusBadRequest
		}
		_ = c.JSON(code, map[string]string{"message": err.Error()})
	}
	NewHandlers(svc).RegisterRoutes(e.Group(""))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetTitle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(t, svc, http.MethodGet, "/titles/tt0133093", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"title:tt0133093"}, svc.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "title", body["variant"])
}

func TestGetTitle_NotFound(t *testing.T) {
	rec := serve(t, &fakeService{}, http.MethodGet, "/titles/tt0000001", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEpisodes(t *testing.T) {
	tests := []struct {
		name   string
		target string
		code   int
		call   string
	}{
		{name: "season", target: "/titles/tt0903747/episodes?season=2", code: http.StatusOK, call: "season:tt0903747/2"},
		{name: "all", target: "/titles/tt0903747/episodes", code: http.StatusOK, call: "episodes:tt0903747"},
		{name: "bad season", target: "/titles/tt0903747/episodes?season=two", code: http.StatusBadRequest},
		{name: "negative season", target: "/titles/tt0903747/episodes?season=-1", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(t, svc, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.code, rec.Code)
			if tt.call != "" {
				assert.Equal(t, []string{tt.call}, svc.calls)
			} else {
				assert.Empty(t, svc.calls)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	svc := &fakeService{}

	rec := serve(t, svc, http.MethodGet, "/search?q=the+matrix", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"search:the matrix"}, svc.calls)

	rec = serve(t, svc, http.MethodGet, "/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetName(t *testing.T) {
	svc := &fakeService{}
	rec := serve(t, svc, http.MethodGet, "/names/nm0000206", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Keanu Reeves")
}

func TestParseDocument(t *testing.T) {
	svc := &fakeService{}

	rec := serve(t, svc, http.MethodPost, "/parse/Title", `{"props":{}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"parse:title"}, svc.calls)

	rec = serve(t, svc, http.MethodPost, "/parse/podcast", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, svc, http.MethodPost, "/parse/title", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
