package plugins

import (
	"math"
	"strings"

	"github.com/Gobusters/ectolinq"
)

// UppercaseTitle upper-cases the title field.
type UppercaseTitle struct{}

func (UppercaseTitle) Name() string { return "uppercase_title" }

func (UppercaseTitle) Override(field string, value any, _ any) (any, bool) {
	title, ok := value.(string)
	if field != "title" || !ok || title == "" {
		return nil, false
	}
	return strings.ToUpper(title), true
}

// RatingRounder rounds the rating field to Places decimals.
type RatingRounder struct {
	Places int
}

func (r RatingRounder) Name() string { return "rating_rounder" }

func (r RatingRounder) Override(field string, value any, _ any) (any, bool) {
	rating, ok := value.(float64)
	if field != "rating" || !ok {
		return nil, false
	}
	scale := math.Pow(10, float64(r.Places))
	return math.Round(rating*scale) / scale, true
}

// GenreFilter drops the Excluded genres. Register it by pointer.
type GenreFilter struct {
	Excluded []string
}

func NewGenreFilter(excluded ...string) *GenreFilter {
	return &GenreFilter{Excluded: excluded}
}

func (g *GenreFilter) Name() string { return "genre_filter" }

func (g *GenreFilter) Override(field string, value any, _ any) (any, bool) {
	genres, ok := value.([]any)
	if field != "genres" || !ok || len(genres) == 0 {
		return nil, false
	}

	kept := ectolinq.Filter(genres, func(genre any) bool {
		name, _ := genre.(string)
		return !ectolinq.Contains(g.Excluded, name)
	})
	if kept == nil {
		kept = []any{}
	}
	return kept, true
}
