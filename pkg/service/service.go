// Package service fetches site pages, parses them into records and caches
// the results.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/ids"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/requestctx"
	"github.com/Ramsey-B/fern/pkg/scraper"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// Fetcher returns the body of a page. A missing page is errors.ErrNotFound.
type Fetcher interface {
	GetPage(ctx context.Context, url string) ([]byte, error)
}

type Config struct {
	// BaseURL defaults to the public site
	BaseURL string
	// Locale is used when a request does not name one
	Locale string
}

type Service struct {
	fetcher Fetcher
	store   cache.Store
	parser  *parser.Parser
	logger  ectologger.Logger
	baseURL string
	locale  string
}

// New creates a service. store may be nil to disable caching.
func New(cfg Config, fetcher Fetcher, store cache.Store, p *parser.Parser, logger ectologger.Logger) *Service {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		parser:  p,
		logger:  logger,
		baseURL: baseURL,
		locale:  cfg.Locale,
	}
}

// parserFor returns a parser bound to the locale of the request and the
// normalized locale itself.
func (s *Service) parserFor(ctx context.Context) (*parser.Parser, string) {
	loc := requestctx.GetLocale(ctx)
	if loc == "" {
		loc = s.locale
	}
	p := s.parser.ForLocale(loc)
	return p, p.Locale()
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
}

// GetTitle fetches and parses a title page.
func (s *Service) GetTitle(ctx context.Context, id string) (record models.TitleRecord, err error) {
	ctx, span := tracing.StartSpan(ctx, "service.GetTitle", attribute.String("imdb.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	titleID, err := ids.Normalize(id, ids.Title)
	if err != nil {
		return nil, invalid(err)
	}

	p, loc := s.parserFor(ctx)
	stored, err := load(ctx, s, "title", titleID.Prefixed(), loc, titleURL(s.baseURL, loc, titleID),
		func(document any) (models.StoredTitle, error) {
			record, err := p.ParseTitle(document)
			return models.StoredTitle{Record: record}, err
		})
	if err != nil {
		return nil, err
	}
	return stored.Record, nil
}

// SearchTitle runs a find query. Title and name results are returned
// together.
func (s *Service) SearchTitle(ctx context.Context, query string) (result *models.SearchResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "service.SearchTitle", attribute.String("search.query", query))
	defer func() { tracing.EndSpan(span, err) }()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", errors.ErrInvalidInput)
	}

	p, loc := s.parserFor(ctx)
	return load(ctx, s, "search", strings.ToLower(query), loc, searchURL(s.baseURL, loc, query), p.ParseSearchResults)
}

// GetPerson fetches and parses a name page.
func (s *Service) GetPerson(ctx context.Context, id string) (person *models.PersonDetail, err error) {
	ctx, span := tracing.StartSpan(ctx, "service.GetPerson", attribute.String("imdb.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	nameID, err := ids.Normalize(id, ids.Name)
	if err != nil {
		return nil, invalid(err)
	}

	p, loc := s.parserFor(ctx)
	return load(ctx, s, "person", nameID.Prefixed(), loc, nameURL(s.baseURL, loc, nameID), p.ParsePerson)
}

// GetSeasonEpisodes fetches one season of a series.
func (s *Service) GetSeasonEpisodes(ctx context.Context, seriesID string, season int) (listing *models.EpisodeListing, err error) {
	ctx, span := tracing.StartSpan(ctx, "service.GetSeasonEpisodes",
		attribute.String("imdb.id", seriesID), attribute.Int("imdb.season", season))
	defer func() { tracing.EndSpan(span, err) }()

	id, err := ids.Normalize(seriesID, ids.Title)
	if err != nil {
		return nil, invalid(err)
	}
	if season < 0 {
		return nil, fmt.Errorf("%w: negative season %d", errors.ErrInvalidInput, season)
	}

	p, loc := s.parserFor(ctx)
	key := fmt.Sprintf("%s/%d", id.Prefixed(), season)
	return load(ctx, s, "season", key, loc, seasonURL(s.baseURL, loc, id, season), p.ParseSeasonEpisodes)
}

// GetAllEpisodes fetches the cross-season episode listing of a series.
func (s *Service) GetAllEpisodes(ctx context.Context, seriesID string) (episodes []models.BulkEpisode, err error) {
	ctx, span := tracing.StartSpan(ctx, "service.GetAllEpisodes", attribute.String("imdb.id", seriesID))
	defer func() { tracing.EndSpan(span, err) }()

	id, err := ids.Normalize(seriesID, ids.Title)
	if err != nil {
		return nil, invalid(err)
	}

	p, loc := s.parserFor(ctx)
	return load(ctx, s, "episodes", id.Prefixed(), loc, episodesURL(s.baseURL, loc, id), p.ParseBulkEpisodes)
}

// ParseDocument parses an already decoded document, e.g. one posted to the
// API or consumed from Kafka. Nothing is fetched or cached.
func (s *Service) ParseDocument(ctx context.Context, docType parser.DocumentType, document any) (record any, err error) {
	_, span := tracing.StartSpan(ctx, "service.ParseDocument", attribute.String("document.type", string(docType)))
	defer func() { tracing.EndSpan(span, err) }()

	p, _ := s.parserFor(ctx)

	start := time.Now()
	record, err = p.ParseDocument(docType, document)
	metrics.RecordParse(string(docType), status(err), time.Since(start).Seconds())
	return record, err
}

// load returns the cached record for kind/id/loc, or fetches pageURL,
// parses it and caches the result. Cache failures are logged and never fail
// the request.
func load[T any](ctx context.Context, s *Service, kind, id, loc, pageURL string, parse func(document any) (T, error)) (T, error) {
	var zero T
	key := cache.Key(kind, id, loc)
	logger := s.logger.WithContext(ctx).WithFields(map[string]any{"kind": kind, "id": id, "locale": loc})

	if s.store != nil {
		if cached, ok := lookup[T](ctx, s.store, key, logger); ok {
			metrics.RecordCacheLookup(kind, true)
			return cached, nil
		}
		metrics.RecordCacheLookup(kind, false)
	}

	logger.Infof("Fetching %s %s", kind, id)
	body, err := s.fetcher.GetPage(ctx, pageURL)
	if err != nil {
		return zero, fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
	}

	document, err := scraper.ExtractNextDataBytes(body)
	if err != nil {
		return zero, fmt.Errorf("failed to extract %s %s: %w", kind, id, err)
	}

	start := time.Now()
	result, err := parse(document)
	metrics.RecordParse(kind, status(err), time.Since(start).Seconds())
	if err != nil {
		logger.WithError(err).Warn("failed to parse page")
		return zero, err
	}

	if s.store != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			logger.WithError(err).Warn("failed to encode record for cache")
		} else if err := s.store.Set(ctx, key, raw); err != nil {
			logger.WithError(err).Warn("failed to cache record")
		}
	}

	logger.Debugf("Fetched %s %s", kind, id)
	return result, nil
}

func lookup[T any](ctx context.Context, store cache.Store, key string, logger ectologger.Logger) (T, bool) {
	var cached T
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("cache lookup failed")
		return cached, false
	}
	if !ok {
		return cached, false
	}
	if err := json.Unmarshal(raw, &cached); err != nil {
		logger.WithError(err).Warn("discarding undecodable cache entry")
		return cached, false
	}
	return cached, true
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, errors.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
