package transforms

import (
	"testing"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want *string
	}{
		{name: "nil", raw: nil, want: nil},
		{name: "full", raw: map[string]any{"year": 1999.0, "month": 3.0, "day": 31.0}, want: ptr("1999-03-31")},
		{name: "year only", raw: map[string]any{"year": 2024.0}, want: ptr("2024-01-01")},
		{name: "null month", raw: map[string]any{"year": 2010.0, "month": nil, "day": 5.0}, want: ptr("2010-01-05")},
		{name: "not an object", raw: "1999", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReleaseDate(tt.raw))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Nil(t, Join(nil))
	assert.Equal(t, ptr("463517383 USD"), Join([]any{463517383.0, "USD"}))
	assert.Equal(t, ptr("63000000"), Join(63000000.0))
	assert.Equal(t, ptr(""), Join([]any{}))
}

func TestNoneToEmpty(t *testing.T) {
	assert.Equal(t, []string{}, NoneToEmpty(nil))
	assert.Equal(t, []string{"en", "ja"}, NoneToEmpty([]any{"en", nil, "ja"}))
}

func TestCertificates(t *testing.T) {
	raw := []any{
		[]any{"US", "United States", "TV-14", []any{}},
		[]any{"US", "United States", "R", []any{"certificate #36569"}},
		[]any{"CA", "Canada", "14", []any{"New Brunswick", "Nova Scotia"}},
	}

	got := Certificates(raw)

	assert.Equal(t, map[string]models.Certificate{
		"US": {Country: "United States", Rating: "TV-14  :: R certificate #36569"},
		"CA": {Country: "Canada", Rating: "14 New Brunswick, Nova Scotia"},
	}, got)
}

func TestCertificates_NeverOverwrites(t *testing.T) {
	raw := []any{}
	previous := 0
	for _, rating := range []string{"G", "PG", "PG-13", "R"} {
		raw = append(raw, []any{"US", "United States", rating, nil})

		got := Certificates(raw)["US"].Rating
		assert.GreaterOrEqual(t, len(got), previous)
		assert.Contains(t, got, "G ")
		previous = len(got)
	}
}

func TestCertificates_Absent(t *testing.T) {
	got := Certificates(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMPAAReason(t *testing.T) {
	edges := []any{
		map[string]any{"node": map[string]any{"ratingsBody": map[string]any{"id": "BBFC"}, "ratingReason": "nope"}},
		map[string]any{"node": map[string]any{"ratingsBody": map[string]any{"id": "MPAA"}, "ratingReason": "Rated R for sci-fi violence"}},
	}

	assert.Equal(t, "Rated R for sci-fi violence", MPAAReason(edges))
	assert.Equal(t, "", MPAAReason(nil))
	assert.Equal(t, "", MPAAReason(edges[:1]))
}

func TestAspectRatios(t *testing.T) {
	got := AspectRatios([]any{
		[]any{"2.39 : 1", nil},
		[]any{"1.78 : 1", "IMAX version"},
	})

	assert.Equal(t, []models.AspectRatio{
		{Ratio: "2.39 : 1", Attribute: ""},
		{Ratio: "1.78 : 1", Attribute: "IMAX version"},
	}, got)
}

func TestAwards(t *testing.T) {
	t.Run("full node", func(t *testing.T) {
		got := Awards([]any{5.0, 10.0, map[string]any{"award": map[string]any{"text": "Oscar"}, "wins": 3.0, "nominations": 7.0}})

		assert.Equal(t, 5, got.Wins)
		assert.Equal(t, 10, got.Nominations)
		require.NotNil(t, got.PrestigiousAward)
		assert.Equal(t, models.PrestigiousAward{Name: "Oscar", Wins: 3, Nominations: 7}, *got.PrestigiousAward)
	})

	t.Run("partial prestigious award", func(t *testing.T) {
		got := Awards([]any{1.0, 2.0, map[string]any{"award": map[string]any{}, "wins": 0.0}})

		require.NotNil(t, got.PrestigiousAward)
		assert.Equal(t, models.PrestigiousAward{}, *got.PrestigiousAward)
	})

	for _, short := range []any{nil, []any{}, []any{2.0}, []any{2.0, 4.0}} {
		got := Awards(short)
		assert.Nil(t, got.PrestigiousAward, "node %v", short)
		if list, ok := short.([]any); ok && len(list) == 2 {
			assert.Equal(t, 2, got.Wins)
			assert.Equal(t, 4, got.Nominations)
			continue
		}
		if list, ok := short.([]any); ok && len(list) == 1 {
			assert.Equal(t, 2, got.Wins)
			assert.Equal(t, 0, got.Nominations)
			continue
		}
		assert.Equal(t, models.Awards{}, got)
	}
}

func TestVoteRatings(t *testing.T) {
	got := VoteRatings([]any{
		[]any{"tt0959621", 9.7, 156000.0},
		[]any{"tt2301451", nil, nil},
	})

	assert.Equal(t, []models.VoteRating{
		{PrefixedID: "tt0959621", Rating: 9.7, Votes: 156000},
		{PrefixedID: "tt2301451"},
	}, got)
	assert.Empty(t, VoteRatings(nil))
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, ptr(136), Minutes(8160.0))
	assert.Equal(t, ptr(136), Minutes(8161.0), "leftover seconds are dropped")
	assert.Equal(t, ptr(136), Minutes(8219.0))
	assert.Nil(t, Minutes(nil))
	assert.Nil(t, Minutes(0.0))
}

func TestTrailers(t *testing.T) {
	got := Trailers([]any{"vi1032782617", nil, ""})
	assert.Equal(t, []string{"https://www.imdb.com/video/vi1032782617"}, got)
}

func TestYears(t *testing.T) {
	got := Years([]any{"2013", "2012", "Unknown", 2011.0, "20x1"})
	assert.Equal(t, []string{"2013", "2012"}, got)
	assert.Equal(t, []string{}, Years(nil))
}

func TestValueHelpers(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": []any{"x", 2.0}}}

	assert.Equal(t, []any{"x", 2.0}, Dig(doc, "a", "b"))
	assert.Nil(t, Dig(doc, "a", "c", "d"))
	assert.True(t, Has(doc, "a.b"))
	assert.False(t, Has(doc, "a.z"))
	assert.Equal(t, "x", Index(Dig(doc, "a", "b"), 0))
	assert.Nil(t, Index(Dig(doc, "a", "b"), 5))
	assert.Equal(t, []string{"x", "2"}, Strings(Dig(doc, "a", "b")))

	assert.Equal(t, ptr(1999), AsInt("1999"))
	assert.Nil(t, AsInt(8.7))
	assert.Equal(t, ptr(8.7), AsFloat(8.7))
	assert.Nil(t, AsString(map[string]any{}))
}

func ptr[T any](v T) *T {
	return &v
}
