package models

import (
	"fmt"

	"github.com/Ramsey-B/fern/pkg/locale"
)

// Certificate is the age rating of a title in one country. Rating joins
// every regional sub-rating with " :: ".
type Certificate struct {
	Country string `json:"country"`
	Rating  string `json:"rating"`
}

// AspectRatio is a ratio and the format it applies to. Missing parts are "".
type AspectRatio struct {
	Ratio     string `json:"ratio"`
	Attribute string `json:"attribute"`
}

type PrestigiousAward struct {
	Name        string `json:"name"`
	Wins        int    `json:"wins" validate:"gte=0"`
	Nominations int    `json:"nominations" validate:"gte=0"`
}

type Awards struct {
	Wins             int               `json:"wins" validate:"gte=0"`
	Nominations      int               `json:"nominations" validate:"gte=0"`
	PrestigiousAward *PrestigiousAward `json:"prestigious_award"`
}

// VoteRating ranks an episode inside a series.
type VoteRating struct {
	PrefixedID string  `json:"imdbId"`
	Rating     float64 `json:"rating"`
	Votes      int     `json:"votes"`
}

// Title is the base record every title page resolves to.
type Title struct {
	Identity
	Title             string                   `json:"title" validate:"required"`
	TitleLocalized    *string                  `json:"title_localized"`
	TitleAkas         []string                 `json:"title_akas"`
	Kind              string                   `json:"kind"`
	Locale            string                   `json:"locale"`
	CoverURL          *string                  `json:"cover_url" validate:"omitempty,url"`
	Plot              *string                  `json:"plot"`
	ReleaseDate       *string                  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Year              *int                     `json:"year"`
	YearEnd           *int                     `json:"year_end"`
	Duration          *int                     `json:"duration" validate:"omitempty,gte=0"`
	Rating            *float64                 `json:"rating"`
	MetacriticRating  *int                     `json:"metacritic_rating"`
	Votes             *int                     `json:"votes" validate:"omitempty,gte=0"`
	Languages         []string                 `json:"languages" validate:"required"`
	LanguagesText     []string                 `json:"languages_text" validate:"required"`
	CountryCodes      []string                 `json:"country_codes" validate:"required"`
	Countries         []string                 `json:"countries" validate:"required"`
	Genres            []string                 `json:"genres" validate:"required"`
	Interests         []string                 `json:"interests"`
	Trailers          []string                 `json:"trailers"`
	Certificates      map[string]Certificate   `json:"certificates"`
	MPAA              string                   `json:"mpaa"`
	Directors         []Person                 `json:"directors" validate:"dive"`
	Stars             []Person                 `json:"stars" validate:"dive"`
	WorldwideGross    *string                  `json:"worldwide_gross"`
	ProductionBudget  *string                  `json:"production_budget"`
	StorylineKeywords []string                 `json:"storyline_keywords"`
	FilmingLocations  []string                 `json:"filming_locations"`
	Summaries         []string                 `json:"summaries"`
	Synopses          []string                 `json:"synopses"`
	Production        []string                 `json:"production"`
	SoundMixes        []string                 `json:"sound_mixes"`
	Processes         []string                 `json:"processes"`
	PrintedFormats    []string                 `json:"printed_formats"`
	NegativeFormats   []string                 `json:"negative_formats"`
	Laboratories      []string                 `json:"laboratories"`
	Colorations       []string                 `json:"colorations"`
	Cameras           []string                 `json:"cameras"`
	AspectRatios      []AspectRatio            `json:"aspect_ratios"`
	Awards            Awards                   `json:"awards"`
	Categories        map[string][]Credit      `json:"categories" validate:"required,dive,dive"`
	CompanyCredits    map[string][]CompanyInfo `json:"company_credits" validate:"dive,dive"`
}

// InfoSeries is attached to series-kind titles only.
type InfoSeries struct {
	DisplayYears   []string `json:"display_years"`
	DisplaySeasons []string `json:"display_seasons"`
	Creators       []Person `json:"creators" validate:"dive"`
}

// InfoEpisode is attached to episode-kind titles only.
type InfoEpisode struct {
	SeasonN              *int    `json:"season_n"`
	EpisodeN             *int    `json:"episode_n"`
	SeriesPrefixedID     *string `json:"series_imdbId"`
	SeriesTitle          *string `json:"series_title"`
	SeriesTitleLocalized *string `json:"series_title_localized"`
}

func (i InfoEpisode) String() string {
	season, episode := 0, 0
	if i.SeasonN != nil {
		season = *i.SeasonN
	}
	if i.EpisodeN != nil {
		episode = *i.EpisodeN
	}
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

type SeriesTitle struct {
	Title
	InfoSeries InfoSeries `json:"info_series"`
}

type EpisodeTitle struct {
	Title
	InfoEpisode InfoEpisode `json:"info_episode"`
}

// TitleRecord is exactly one of *Title, *SeriesTitle or *EpisodeTitle.
type TitleRecord interface {
	Base() *Title
	Variant() Variant
	sealed()
}

func (t *Title) Base() *Title     { return t }
func (t *Title) Variant() Variant { return VariantTitle }
func (t *Title) sealed()          {}

func (t *SeriesTitle) Variant() Variant { return VariantSeries }

func (t *EpisodeTitle) Variant() Variant { return VariantEpisode }

func (t *Title) IsSeries() bool {
	return IsSeriesKind(t.Kind)
}

func (t *Title) IsEpisode() bool {
	return IsEpisodeKind(t.Kind)
}

// DisplayTitle prefers the localized title for any locale other than the
// default, falling back to the original.
func (t *Title) DisplayTitle() string {
	if t.Locale != "" && t.Locale != locale.Default && t.TitleLocalized != nil && *t.TitleLocalized != "" {
		return *t.TitleLocalized
	}
	return t.Title
}

// Cast returns the cast category, which is always present.
func (t *Title) Cast() []Credit {
	return t.Categories[CastCategory]
}

// CastCategory is the key every title files its cast under.
const CastCategory = "cast"

func (t *Title) String() string {
	if t.Year != nil {
		return fmt.Sprintf("%s (%d) - %s", t.Title, *t.Year, t.PrefixedID)
	}
	return fmt.Sprintf("%s - %s", t.Title, t.PrefixedID)
}

// TitleBrief is the reduced title used in search results and credit lists.
type TitleBrief struct {
	Identity
	Title          string   `json:"title" validate:"required"`
	TitleLocalized *string  `json:"title_localized"`
	Kind           *string  `json:"kind"`
	Year           *int     `json:"year"`
	CoverURL       *string  `json:"cover_url"`
	Rating         *float64 `json:"rating"`
}
