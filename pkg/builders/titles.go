package builders

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

// SearchTitle builds a brief from a find page title result.
// Requires id and titleNameText.
func SearchTitle(fragment any) (models.TitleBrief, error) {
	ident, err := titleIdentity(fragment, "id")
	if err != nil {
		return models.TitleBrief{}, err
	}
	title, err := requiredString(fragment, "titleNameText")
	if err != nil {
		return models.TitleBrief{}, err
	}

	// titleReleaseText is "1999" for films and "2008–2013" for series.
	var year *int
	if release := optionalString(fragment, "titleReleaseText"); release != nil {
		start, _, _ := strings.Cut(*release, "–")
		year = transforms.AsInt(start)
	}

	return models.TitleBrief{
		Identity: ident,
		Title:    title,
		Kind:     optionalString(fragment, "imageType"),
		Year:     year,
		CoverURL: optionalString(fragment, "titlePosterImageModel.url"),
	}, nil
}

// TitleNode builds a brief from a GraphQL title node, as found in credit
// edges and filmographies. Requires id and one of originalTitleText.text or
// titleText.text.
func TitleNode(fragment any) (models.TitleBrief, error) {
	ident, err := titleIdentity(fragment, "id")
	if err != nil {
		return models.TitleBrief{}, err
	}

	original := optionalString(fragment, "originalTitleText.text")
	localized := optionalString(fragment, "titleText.text")
	var title string
	switch {
	case original != nil && *original != "":
		title = *original
	case localized != nil && *localized != "":
		title = *localized
	default:
		return models.TitleBrief{}, errors.MissingKey("titleText.text")
	}

	year := transforms.Dig(fragment, "releaseYear")
	if m := transforms.AsMap(year); m != nil {
		year = m["year"]
	}

	return models.TitleBrief{
		Identity:       ident,
		Title:          title,
		TitleLocalized: localized,
		Kind:           optionalString(fragment, "titleType.id"),
		Year:           transforms.AsInt(year),
		CoverURL:       optionalString(fragment, "primaryImage.url"),
		Rating:         transforms.AsFloat(transforms.Dig(fragment, "ratingsSummary", "aggregateRating")),
	}, nil
}

// FlatCredit reads a legacy [category, id, title, kind, image, year] tuple.
// Requires the id and title positions.
func FlatCredit(fragment any) (string, models.TitleBrief, error) {
	tuple := transforms.AsList(fragment)

	prefixed := transforms.String(transforms.Index(tuple, 1))
	if prefixed == "" {
		return "", models.TitleBrief{}, errors.MissingKey("[1]")
	}
	title := transforms.String(transforms.Index(tuple, 2))
	if title == "" {
		return "", models.TitleBrief{}, errors.MissingKey("[2]")
	}
	ident, err := titleIdentity(map[string]any{"id": prefixed}, "id")
	if err != nil {
		return "", models.TitleBrief{}, err
	}

	return transforms.String(transforms.Index(tuple, 0)), models.TitleBrief{
		Identity: ident,
		Title:    title,
		Kind:     transforms.AsString(transforms.Index(tuple, 3)),
		CoverURL: transforms.AsString(transforms.Index(tuple, 4)),
		Year:     transforms.AsInt(transforms.Index(tuple, 5)),
	}, nil
}

// SeasonEpisode builds an entry of a season listing.
// Requires id, titleText, season and episode.
func SeasonEpisode(fragment any) (models.Episode, error) {
	ident, err := titleIdentity(fragment, "id")
	if err != nil {
		return models.Episode{}, err
	}
	title, err := requiredString(fragment, "titleText")
	if err != nil {
		return models.Episode{}, err
	}
	season, err := requiredInt(fragment, "season")
	if err != nil {
		return models.Episode{}, err
	}
	episode, err := requiredInt(fragment, "episode")
	if err != nil {
		return models.Episode{}, err
	}

	return models.Episode{
		Identity:    ident,
		Title:       title,
		Season:      season,
		Episode:     episode,
		Plot:        transforms.String(transforms.Dig(fragment, "plot")),
		ImageURL:    optionalString(fragment, "image.url"),
		Rating:      transforms.AsFloat(transforms.Dig(fragment, "aggregateRating")),
		Votes:       transforms.AsInt(transforms.Dig(fragment, "voteCount")),
		Year:        transforms.AsInt(transforms.Dig(fragment, "releaseYear")),
		ReleaseDate: transforms.ReleaseDate(transforms.Dig(fragment, "releaseDate")),
		Kind:        optionalString(fragment, "type"),
	}, nil
}

// BulkEpisode builds an entry of the cross-season episode search.
// Requires titleId and titleText.
func BulkEpisode(fragment any) (models.BulkEpisode, error) {
	ident, err := titleIdentity(fragment, "titleId")
	if err != nil {
		return models.BulkEpisode{}, err
	}
	title, err := requiredString(fragment, "titleText")
	if err != nil {
		return models.BulkEpisode{}, err
	}

	return models.BulkEpisode{
		Identity:    ident,
		Title:       title,
		Plot:        transforms.String(transforms.Dig(fragment, "plot")),
		ImageURL:    optionalString(fragment, "primaryImage.url"),
		Rating:      transforms.AsFloat(transforms.Dig(fragment, "ratingSummary", "aggregateRating")),
		Votes:       transforms.AsInt(transforms.Dig(fragment, "ratingSummary", "voteCount")),
		Year:        transforms.AsInt(transforms.Dig(fragment, "releaseYear")),
		ReleaseDate: transforms.ReleaseDate(transforms.Dig(fragment, "releaseDate")),
		Kind:        optionalString(fragment, "titleType.id"),
		Genres:      transforms.NoneToEmpty(transforms.Dig(fragment, "genres")),
		Duration:    transforms.AsInt(transforms.Dig(fragment, "runtime")),
	}, nil
}
