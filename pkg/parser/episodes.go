package parser

import (
	"github.com/Ramsey-B/fern/pkg/builders"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

const (
	episodesEntity     = "episodes"
	bulkEpisodesEntity = "bulk_episodes"
)

// Season listing queries, relative to props.pageProps.contentData.
var (
	qListingSeriesID  = query("data.title.id")
	qCurrentSeason    = query("section.currentSeason")
	qTopRatedEpisode  = query("data.title.episodes.topRated.edges[0].node.ratingsSummary.aggregateRating")
	qTotalEpisodes    = query("data.title.episodes.totalEpisodes.total")
	qSeasons          = query("data.title.episodes.seasons")
	qTopTenEpisodes   = query("data.title.episodes.topTenEpisodes.edges[].[node.id, node.ratingsSummary.aggregateRating, node.ratingsSummary.voteCount]").Then(voteRatings).OrElse()
	qSeasonEpisodes   = query("section.episodes.items")
	qBulkEpisodeItems = query("titleResults.titleListItems")
)

// ParseSeasonEpisodes parses one season of an episode listing page.
func (p *Parser) ParseSeasonEpisodes(document any) (*models.EpisodeListing, error) {
	x, err := p.begin(episodesEntity, document, "props.pageProps.contentData")
	if err != nil {
		return nil, err
	}

	listing := &models.EpisodeListing{
		SeriesPrefixedID:    value(x, qListingSeriesID, transforms.String),
		SeasonNumber:        intOrZero(x.run(qCurrentSeason)),
		TopRatingEpisode:    field(x, "top_rating_episode", value(x, qTopRatedEpisode, transforms.AsFloat)),
		TotalSeriesEpisodes: field(x, "total_series_episodes", value(x, qTotalEpisodes, transforms.AsInt)),
		TotalSeriesSeasons:  len(x.list(qSeasons)),
		TopTenEpisodes:      field(x, "top_ten_episodes", value(x, qTopTenEpisodes, transforms.VoteRatings)),
		Episodes:            field(x, "episodes", builders.Collect(x.list(qSeasonEpisodes), builders.SeasonEpisode, x.skip("episodes"))),
	}

	if err := x.finish(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// ParseBulkEpisodes parses the cross-season episode search of a series.
func (p *Parser) ParseBulkEpisodes(document any) ([]models.BulkEpisode, error) {
	x, err := p.begin(bulkEpisodesEntity, document, "props.pageProps.searchResults")
	if err != nil {
		return nil, err
	}

	episodes := field(x, "episodes", builders.Collect(x.list(qBulkEpisodeItems), builders.BulkEpisode, x.skip("episodes")))
	if x.err != nil {
		return nil, x.err
	}

	for i := range episodes {
		if err := models.Validate(bulkEpisodesEntity, &episodes[i]); err != nil {
			return nil, err
		}
	}
	return episodes, nil
}

func intOrZero(raw any) int {
	if i := transforms.AsInt(raw); i != nil {
		return *i
	}
	return 0
}
