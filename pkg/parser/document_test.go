package parser

import (
	"testing"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType(t *testing.T) {
	docType, err := ParseDocumentType(" Title ")
	require.NoError(t, err)
	assert.Equal(t, DocumentTitle, docType)

	_, err = ParseDocumentType("soundtrack")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestParseDocument(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		docType DocumentType
		fixture string
		check   func(t *testing.T, record any)
	}{
		{docType: DocumentTitle, fixture: "title_series.json", check: func(t *testing.T, record any) {
			assert.IsType(t, &models.SeriesTitle{}, record)
		}},
		{docType: DocumentSearch, fixture: "search.json", check: func(t *testing.T, record any) {
			assert.IsType(t, &models.SearchResult{}, record)
		}},
		{docType: DocumentPerson, fixture: "person.json", check: func(t *testing.T, record any) {
			assert.IsType(t, &models.PersonDetail{}, record)
		}},
		{docType: DocumentSeason, fixture: "season.json", check: func(t *testing.T, record any) {
			assert.IsType(t, &models.EpisodeListing{}, record)
		}},
		{docType: DocumentEpisodes, fixture: "bulk_episodes.json", check: func(t *testing.T, record any) {
			assert.IsType(t, []models.BulkEpisode{}, record)
		}},
		{docType: DocumentAkas, fixture: "akas.json", check: func(t *testing.T, record any) {
			assert.IsType(t, &models.Akas{}, record)
		}},
		{docType: DocumentFilmography, fixture: "filmography.json", check: func(t *testing.T, record any) {
			assert.IsType(t, &models.Filmography{}, record)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			record, err := p.ParseDocument(tt.docType, loadFixture(t, tt.fixture))
			require.NoError(t, err)
			tt.check(t, record)
		})
	}

	_, err := p.ParseDocument("soundtrack", map[string]any{})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestParser_ForLocale(t *testing.T) {
	base := newTestParser()
	italian := base.ForLocale("it")

	assert.Equal(t, "en", base.Locale())
	assert.Equal(t, "it", italian.Locale())
	assert.Same(t, base.Chain(), italian.Chain())
}
