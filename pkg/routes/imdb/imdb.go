package imdb

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Service is the lookup surface the handlers need
type Service interface {
	GetTitle(ctx context.Context, id string) (models.TitleRecord, error)
	SearchTitle(ctx context.Context, query string) (*models.SearchResult, error)
	GetPerson(ctx context.Context, id string) (*models.PersonDetail, error)
	GetSeasonEpisodes(ctx context.Context, seriesID string, season int) (*models.EpisodeListing, error)
	GetAllEpisodes(ctx context.Context, seriesID string) ([]models.BulkEpisode, error)
	ParseDocument(ctx context.Context, docType parser.DocumentType, document any) (any, error)
}

type Handlers struct {
	service Service
}

func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the lookup and parse endpoints
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/titles/:id", h.GetTitle)
	g.GET("/titles/:id/episodes", h.GetEpisodes)
	g.GET("/search", h.Search)
	g.GET("/names/:id", h.GetName)
	g.POST("/parse/:type", h.ParseDocument)
}

var validate = validator.New()

// bindRequest binds path, query and body values into T and validates it
func bindRequest[T any](c echo.Context) (T, error) {
	var v T

	if err := c.Bind(&v); err != nil {
		return v, fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}

	if err := validate.Struct(v); err != nil {
		return v, fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}

	return v, nil
}

type idRequest struct {
	ID string `param:"id" validate:"required"`
}

func (h *Handlers) GetTitle(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "imdb.GetTitle")
	defer span.End()

	req, err := bindRequest[idRequest](c)
	if err != nil {
		return err
	}

	record, err := h.service.GetTitle(ctx, req.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.StoredTitle{Record: record})
}

type episodesRequest struct {
	ID     string `param:"id" validate:"required"`
	Season string `query:"season" validate:"omitempty,number"`
}

// GetEpisodes lists one season when season is given, every episode of the
// series otherwise.
func (h *Handlers) GetEpisodes(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "imdb.GetEpisodes")
	defer span.End()

	req, err := bindRequest[episodesRequest](c)
	if err != nil {
		return err
	}

	if req.Season == "" {
		episodes, err := h.service.GetAllEpisodes(ctx, req.ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, episodes)
	}

	season, err := strconv.Atoi(req.Season)
	if err != nil {
		return fmt.Errorf("%w: invalid season %q", errors.ErrInvalidInput, req.Season)
	}

	listing, err := h.service.GetSeasonEpisodes(ctx, req.ID, season)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listing)
}

type searchRequest struct {
	Query string `query:"q" validate:"required"`
}

func (h *Handlers) Search(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "imdb.Search")
	defer span.End()

	req, err := bindRequest[searchRequest](c)
	if err != nil {
		return err
	}

	result, err := h.service.SearchTitle(ctx, req.Query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handlers) GetName(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "imdb.GetName")
	defer span.End()

	req, err := bindRequest[idRequest](c)
	if err != nil {
		return err
	}

	person, err := h.service.GetPerson(ctx, req.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, person)
}

// ParseDocument parses a decoded page state or GraphQL payload posted as the
// request body.
func (h *Handlers) ParseDocument(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "imdb.ParseDocument")
	defer span.End()

	docType, err := parser.ParseDocumentType(c.Param("type"))
	if err != nil {
		return err
	}

	var document any
	if err := (&echo.DefaultBinder{}).BindBody(c, &document); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}
	if document == nil {
		return fmt.Errorf("%w: empty document", errors.ErrInvalidInput)
	}

	record, err := h.service.ParseDocument(ctx, docType, document)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}
