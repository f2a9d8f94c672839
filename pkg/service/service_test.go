package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/plugins"
	"github.com/Ramsey-B/fern/pkg/requestctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves fixture pages by URL.
type fakeFetcher struct {
	pages map[string][]byte
	calls map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string][]byte{}, calls: map[string]int{}}
}

func (f *fakeFetcher) GetPage(_ context.Context, url string) ([]byte, error) {
	f.calls[url]++
	page, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotFound, url)
	}
	return page, nil
}

func (f *fakeFetcher) serve(t *testing.T, url, fixture string) {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "parser", "testdata", fixture))
	require.NoError(t, err)
	f.pages[url] = []byte(`<html><head><script id="__NEXT_DATA__" type="application/json">` + string(raw) + `</script></head></html>`)
}

func newTestService(fetcher Fetcher, store cache.Store) *Service {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	p := parser.New(parser.WithChain(plugins.NewChain()), parser.WithLogger(logger))
	return New(Config{}, fetcher, store, p, logger)
}

func TestService_GetTitle(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serve(t, "https://www.imdb.com/title/tt0133093/reference", "title_movie.json")
	store := cache.NewMemoryStore(cache.DefaultMemoryConfig())
	svc := newTestService(fetcher, store)

	record, err := svc.GetTitle(context.Background(), "133093")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", record.Base().Title)
	assert.Equal(t, "en", record.Base().Locale)

	cached, err := svc.GetTitle(context.Background(), "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, record, cached)
	assert.Equal(t, 1, fetcher.calls["https://www.imdb.com/title/tt0133093/reference"])

	_, ok, _ := store.Get(context.Background(), cache.Key("title", "tt0133093", "en"))
	assert.True(t, ok)
}

func TestService_GetTitle_Series(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serve(t, "https://www.imdb.com/title/tt0903747/reference", "title_series.json")
	svc := newTestService(fetcher, cache.NewMemoryStore(cache.DefaultMemoryConfig()))

	for i := 0; i < 2; i++ {
		record, err := svc.GetTitle(context.Background(), "tt0903747")
		require.NoError(t, err)
		assert.IsType(t, &models.SeriesTitle{}, record)
	}
}

func TestService_GetTitle_Locale(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serve(t, "https://www.imdb.com/it/title/tt0133093/reference", "title_movie.json")
	svc := newTestService(fetcher, nil)

	ctx := requestctx.SetLocale(context.Background(), "IT")
	record, err := svc.GetTitle(ctx, "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, "it", record.Base().Locale)
}

func TestService_Errors(t *testing.T) {
	svc := newTestService(newFakeFetcher(), nil)
	ctx := context.Background()

	_, err := svc.GetTitle(ctx, "not-an-id")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.GetTitle(ctx, "tt0000001")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = svc.SearchTitle(ctx, "   ")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.GetSeasonEpisodes(ctx, "tt0903747", -1)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestService_PageWithoutState(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.pages["https://www.imdb.com/name/nm0000206/"] = []byte("<html><body>captcha</body></html>")
	svc := newTestService(fetcher, nil)

	_, err := svc.GetPerson(context.Background(), "nm0000206")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestService_SearchTitle(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serve(t, "https://www.imdb.com/find/?q=the+matrix&ref_=nv_sr_sm", "search.json")
	svc := newTestService(fetcher, cache.NewMemoryStore(cache.DefaultMemoryConfig()))

	result, err := svc.SearchTitle(context.Background(), "the matrix")
	require.NoError(t, err)
	require.Len(t, result.Titles, 2)
	assert.Equal(t, "The Matrix", result.Titles[0].Title)
}

func TestService_GetPerson(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serve(t, "https://www.imdb.com/name/nm0000206/", "person.json")
	svc := newTestService(fetcher, cache.NewMemoryStore(cache.DefaultMemoryConfig()))

	person, err := svc.GetPerson(context.Background(), "206")
	require.NoError(t, err)
	assert.Equal(t, "Keanu Reeves", person.Name)

	cached, err := svc.GetPerson(context.Background(), "nm0000206")
	require.NoError(t, err)
	assert.Equal(t, person, cached)
	assert.Equal(t, 1, fetcher.calls["https://www.imdb.com/name/nm0000206/"])
}

func TestService_Episodes(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.serve(t, "https://www.imdb.com/title/tt0903747/episodes/?season=1", "season.json")
	fetcher.serve(t, "https://www.imdb.com/search/title/?count=250&series=tt0903747&sort=release_date%2Casc", "bulk_episodes.json")
	svc := newTestService(fetcher, nil)

	listing, err := svc.GetSeasonEpisodes(context.Background(), "tt0903747", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, listing.Episodes)

	episodes, err := svc.GetAllEpisodes(context.Background(), "tt0903747")
	require.NoError(t, err)
	assert.NotEmpty(t, episodes)
}

func TestService_ParseDocument(t *testing.T) {
	svc := newTestService(newFakeFetcher(), nil)

	_, err := svc.ParseDocument(context.Background(), parser.DocumentTitle, map[string]any{})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "https://www.imdb.com/title/tt1/", pageURL(BaseURL, "en", "/title/tt1/"))
	assert.Equal(t, "https://www.imdb.com/fr-ca/title/tt1/", pageURL(BaseURL+"/", "fr-ca", "/title/tt1/"))
	assert.Equal(t, "https://www.imdb.com/title/tt1/", pageURL(BaseURL, "klingon", "/title/tt1/"))
}
