package models

import "fmt"

// Episode is one entry of a season listing.
type Episode struct {
	Identity
	Title       string   `json:"title" validate:"required"`
	Season      int      `json:"season" validate:"gte=0"`
	Episode     int      `json:"episode" validate:"gte=0"`
	Plot        string   `json:"plot"`
	ImageURL    *string  `json:"image_url"`
	Rating      *float64 `json:"rating"`
	Votes       *int     `json:"votes"`
	Year        *int     `json:"year"`
	ReleaseDate *string  `json:"release_date"`
	Kind        *string  `json:"kind"`
}

func (e Episode) String() string {
	return fmt.Sprintf("S%02dE%02d %s", e.Season, e.Episode, e.Title)
}

// BulkEpisode is one entry of the cross-season episode search, which exposes
// genres and runtime but not season numbers.
type BulkEpisode struct {
	Identity
	Title       string   `json:"title" validate:"required"`
	Plot        string   `json:"plot"`
	ImageURL    *string  `json:"image_url"`
	Rating      *float64 `json:"rating"`
	Votes       *int     `json:"votes"`
	Year        *int     `json:"year"`
	ReleaseDate *string  `json:"release_date"`
	Kind        *string  `json:"kind"`
	Genres      []string `json:"genres"`
	Duration    *int     `json:"duration"`
}

// EpisodeListing is one season of a series.
type EpisodeListing struct {
	SeriesPrefixedID    string       `json:"series_imdbId"`
	SeasonNumber        int          `json:"season_number"`
	TopRatingEpisode    *float64     `json:"top_rating_episode"`
	TotalSeriesEpisodes *int         `json:"total_series_episodes"`
	TotalSeriesSeasons  int          `json:"total_series_seasons"`
	TopTenEpisodes      []VoteRating `json:"top_ten_episodes"`
	Episodes            []Episode    `json:"episodes" validate:"dive"`
}

// Episode looks an episode up by its number within the season.
func (l *EpisodeListing) Episode(number int) (Episode, bool) {
	for _, e := range l.Episodes {
		if e.Episode == number {
			return e, true
		}
	}
	return Episode{}, false
}
