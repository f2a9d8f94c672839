package parser

import (
	"github.com/Ramsey-B/fern/pkg/builders"
	"github.com/Ramsey-B/fern/pkg/categories"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/ids"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

const titleEntity = "title"

// Title page queries, relative to props.pageProps.
var (
	qTitleID        = query("mainColumnData.id")
	qTitleKind      = query("mainColumnData.titleType.id")
	qOriginalTitle  = query("aboveTheFoldData.originalTitleText.text")
	qLocalizedTitle = query("aboveTheFoldData.titleText.text")
	qTitleAkas      = query("mainColumnData.akas.edges[].node.text")
	qCover          = query("aboveTheFoldData.primaryImage.url")
	qPlot           = query("mainColumnData.plot.plotText.plainText")
	qReleaseDate    = query("mainColumnData.releaseDate").Then(releaseDate)
	qYear           = query("aboveTheFoldData.releaseYear.year")
	qYearEnd        = query("aboveTheFoldData.releaseYear.endYear")
	qDuration       = query("aboveTheFoldData.runtime.seconds").Then(minutes)
	qRating         = query("mainColumnData.ratingsSummary.aggregateRating")
	qVotes          = query("mainColumnData.ratingsSummary.voteCount")
	qMetacritic     = query("mainColumnData.metacritic.metascore.score")
	qLanguages      = query("mainColumnData.spokenLanguages.spokenLanguages[].id").Then(noneToEmpty).OrElse()
	qLanguagesText  = query("mainColumnData.spokenLanguages.spokenLanguages[].text").Then(noneToEmpty).OrElse()
	qCountryCodes   = query("mainColumnData.countriesDetails.countries[].id").Then(noneToEmpty).OrElse()
	qCountries      = query("mainColumnData.countriesDetails.countries[].text").Then(noneToEmpty).OrElse()
	qGenres         = query("mainColumnData.genres.genres[].text").Then(noneToEmpty).OrElse()
	qInterests      = query("mainColumnData.interests.edges[].node.primaryText.text")
	qTrailers       = query("mainColumnData.primaryVideos.edges[].node.id").Then(trailers)
	qCertificates   = query("mainColumnData.certificates.edges[].node.[country.id, country.text, rating, attributes[].text]").Then(certificates).OrElse()
	qMPAA           = query("mainColumnData.certificates.edges[?node.ratingsBody.id=='MPAA']").Then(mpaaReason).OrElse()
	qDirectors      = query("mainColumnData.directorsPageTitle[0].credits")
	qStars          = query("aboveTheFoldData.castPageTitle.edges")
	qGross          = query("mainColumnData.worldwideGross.total.[amount, currency]").Then(join)
	qBudget         = query("mainColumnData.productionBudget.budget.[amount, currency]").Then(join)
	qKeywords       = query("mainColumnData.storylineKeywords.edges[].node.text")
	qLocations      = query("mainColumnData.filmingLocations.edges[].node.text")
	qSummaries      = query("mainColumnData.summaries.edges[].node.plotText.plaidHtml")
	qSynopses       = query("mainColumnData.synopses.edges[].node.plotText.plaidHtml")
	qProduction     = query("mainColumnData.production.edges[].node.company.companyText.text")
	qSoundMixes     = query("mainColumnData.technicalSpecifications.soundMixes.items[].text")
	qProcesses      = query("mainColumnData.technicalSpecifications.processes.items[].process")
	qPrinted        = query("mainColumnData.technicalSpecifications.printedFormats.items[].printedFormat")
	qNegative       = query("mainColumnData.technicalSpecifications.negativeFormats.items[].negativeFormat")
	qLaboratories   = query("mainColumnData.technicalSpecifications.laboratories.items[].laboratory")
	qColorations    = query("mainColumnData.technicalSpecifications.colorations.items[].text")
	qCameras        = query("mainColumnData.technicalSpecifications.cameras.items[].camera")
	qAspectRatios   = query("mainColumnData.technicalSpecifications.aspectRatios.items[].[aspectRatio, attributes[0].text]").Then(aspectRatios)
	qAwards         = query("mainColumnData.[wins.total, nominationsExcludeWins.total, prestigiousAwardSummary]").Then(awards).OrElse()
	qCategories     = query("mainColumnData.categories")
	qCompanyCredits = query("mainColumnData.companyCreditCategories")

	qDisplayYears   = query("mainColumnData.episodes.displayableYears.edges[].node.year").Then(years).OrElse()
	qDisplaySeasons = query("mainColumnData.episodes.displayableSeasons.edges[].node.season")
	qCreators       = query("mainColumnData.creatorsPageTitle[0].credits")

	qSeasonN              = query("mainColumnData.series.episodeNumber.seasonNumber")
	qEpisodeN             = query("mainColumnData.series.episodeNumber.episodeNumber")
	qSeriesID             = query("mainColumnData.series.series.id")
	qSeriesTitle          = query("mainColumnData.series.series.originalTitleText.text")
	qSeriesTitleLocalized = query("mainColumnData.series.series.titleText.text")
)

// ParseTitle parses a title page. The record is a *models.SeriesTitle or
// *models.EpisodeTitle when the title kind says so and a *models.Title
// otherwise. errors.ErrNotFound is returned when the document has no title.
func (p *Parser) ParseTitle(document any) (models.TitleRecord, error) {
	x, err := p.begin(titleEntity, document, "props.pageProps", "mainColumnData")
	if err != nil {
		return nil, err
	}

	// the variant follows the document's kind, never an override of it
	kind := value(x, qTitleKind, transforms.String)
	base := x.title(kind)

	var record models.TitleRecord
	switch models.ResolveVariant(kind) {
	case models.VariantSeries:
		record = &models.SeriesTitle{Title: base, InfoSeries: x.infoSeries()}
	case models.VariantEpisode:
		record = &models.EpisodeTitle{Title: base, InfoEpisode: x.infoEpisode()}
	default:
		record = &base
	}

	if err := x.finish(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (x *extraction) title(kind string) models.Title {
	t := models.Title{Locale: x.p.Locale()}

	prefixed := value(x, qTitleID, transforms.String)
	id, err := ids.ParseAs(prefixed, ids.Title)
	if err != nil {
		x.fail(errors.NewParseErrorf("%w", err).AddEntity(x.entity).AddField("imdbId"))
		return t
	}
	t.Identity = models.NewIdentity(id)

	t.TitleLocalized = field(x, "title_localized", value(x, qLocalizedTitle, transforms.AsString))
	original := value(x, qOriginalTitle, transforms.String)
	if original == "" && t.TitleLocalized != nil {
		original = *t.TitleLocalized
	}
	t.Title = field(x, "title", original)
	t.TitleAkas = field(x, "title_akas", value(x, qTitleAkas, transforms.Strings))
	t.Kind = field(x, "kind", kind)

	t.CoverURL = field(x, "cover_url", value(x, qCover, transforms.AsString))
	t.Plot = field(x, "plot", value(x, qPlot, transforms.AsString))
	t.ReleaseDate = field(x, "release_date", value(x, qReleaseDate, transforms.ReleaseDate))
	t.Year = field(x, "year", value(x, qYear, transforms.AsInt))
	t.YearEnd = field(x, "year_end", value(x, qYearEnd, transforms.AsInt))
	t.Duration = field(x, "duration", value(x, qDuration, transforms.Minutes))

	t.Rating = field(x, "rating", value(x, qRating, transforms.AsFloat))
	t.MetacriticRating = field(x, "metacritic_rating", value(x, qMetacritic, transforms.AsInt))
	t.Votes = field(x, "votes", value(x, qVotes, transforms.AsInt))

	t.Languages = field(x, "languages", value(x, qLanguages, transforms.NoneToEmpty))
	t.LanguagesText = field(x, "languages_text", value(x, qLanguagesText, transforms.NoneToEmpty))
	t.CountryCodes = field(x, "country_codes", value(x, qCountryCodes, transforms.NoneToEmpty))
	t.Countries = field(x, "countries", value(x, qCountries, transforms.NoneToEmpty))
	t.Genres = field(x, "genres", value(x, qGenres, transforms.NoneToEmpty))
	t.Interests = field(x, "interests", value(x, qInterests, transforms.Strings))
	t.Trailers = field(x, "trailers", value(x, qTrailers, transforms.Trailers))

	t.Certificates = field(x, "certificates", value(x, qCertificates, transforms.Certificates))
	t.MPAA = field(x, "mpaa", value(x, qMPAA, transforms.MPAAReason))

	t.Directors = field(x, "directors", builders.Collect(x.list(qDirectors), builders.Director, x.skip("directors")))
	t.Stars = field(x, "stars", builders.Collect(x.list(qStars), builders.Star, x.skip("stars")))

	t.WorldwideGross = field(x, "worldwide_gross", value(x, qGross, transforms.Join))
	t.ProductionBudget = field(x, "production_budget", value(x, qBudget, transforms.Join))

	t.StorylineKeywords = field(x, "storyline_keywords", value(x, qKeywords, transforms.Strings))
	t.FilmingLocations = field(x, "filming_locations", value(x, qLocations, transforms.Strings))
	t.Summaries = field(x, "summaries", value(x, qSummaries, transforms.Strings))
	t.Synopses = field(x, "synopses", value(x, qSynopses, transforms.Strings))
	t.Production = field(x, "production", value(x, qProduction, transforms.Strings))

	t.SoundMixes = field(x, "sound_mixes", value(x, qSoundMixes, transforms.Strings))
	t.Processes = field(x, "processes", value(x, qProcesses, transforms.Strings))
	t.PrintedFormats = field(x, "printed_formats", value(x, qPrinted, transforms.Strings))
	t.NegativeFormats = field(x, "negative_formats", value(x, qNegative, transforms.Strings))
	t.Laboratories = field(x, "laboratories", value(x, qLaboratories, transforms.Strings))
	t.Colorations = field(x, "colorations", value(x, qColorations, transforms.Strings))
	t.Cameras = field(x, "cameras", value(x, qCameras, transforms.Strings))
	t.AspectRatios = field(x, "aspect_ratios", value(x, qAspectRatios, transforms.AspectRatios))

	t.Awards = field(x, "awards", value(x, qAwards, transforms.Awards))
	t.Categories = field(x, "categories", x.categories())
	if _, ok := t.Categories[categories.Cast]; !ok && x.err == nil {
		x.fail(errors.NewParseErrorf("missing %q key", categories.Cast).AddEntity(x.entity).AddField("categories"))
	}
	t.CompanyCredits = field(x, "company_credits", x.companyCredits())

	return t
}

// categories files every credit under its category key, except cast members,
// which always go under categories.Cast whatever group lists them. Every known
// key and the cast key are present even when the title credits nobody under
// them.
func (x *extraction) categories() map[string][]models.Credit {
	out := make(map[string][]models.Credit, len(categories.Table)+1)
	for _, key := range categories.Keys() {
		out[key] = []models.Credit{}
	}

	for _, category := range x.list(qCategories) {
		label := transforms.String(transforms.Dig(category, "name"))
		key := categories.Resolve(transforms.String(transforms.Dig(category, "id")), label)
		if key == "" {
			continue
		}

		items := transforms.AsList(transforms.Dig(category, "section", "items"))
		credits := builders.Collect(items, builders.CategoryCredit(label), x.skip("categories."+key))
		for _, credit := range credits {
			if credit.IsCast() {
				out[categories.Cast] = append(out[categories.Cast], credit)
				continue
			}
			out[key] = append(out[key], credit)
		}
	}

	return out
}

// companyCredits groups credited companies by category id. Categories without
// an id are skipped.
func (x *extraction) companyCredits() map[string][]models.CompanyInfo {
	out := map[string][]models.CompanyInfo{}
	for _, category := range x.list(qCompanyCredits) {
		key := transforms.String(transforms.Dig(category, "category", "id"))
		if key == "" {
			continue
		}

		edges := transforms.AsList(transforms.Dig(category, "companyCredits", "edges"))
		nodes := make([]any, 0, len(edges))
		for _, edge := range edges {
			nodes = append(nodes, transforms.Dig(edge, "node"))
		}

		out[key] = append(out[key], builders.Collect(nodes, builders.Company, x.skip("company_credits."+key))...)
	}
	return out
}

func (x *extraction) infoSeries() models.InfoSeries {
	info := models.InfoSeries{
		DisplayYears:   value(x, qDisplayYears, transforms.Years),
		DisplaySeasons: transforms.NoneToEmpty(x.run(qDisplaySeasons)),
		Creators:       builders.Collect(x.list(qCreators), builders.Creator, x.skip("info_series.creators")),
	}
	return field(x, "info_series", info)
}

func (x *extraction) infoEpisode() models.InfoEpisode {
	info := models.InfoEpisode{
		SeasonN:              value(x, qSeasonN, transforms.AsInt),
		EpisodeN:             value(x, qEpisodeN, transforms.AsInt),
		SeriesPrefixedID:     value(x, qSeriesID, transforms.AsString),
		SeriesTitle:          value(x, qSeriesTitle, transforms.AsString),
		SeriesTitleLocalized: value(x, qSeriesTitleLocalized, transforms.AsString),
	}
	return field(x, "info_episode", info)
}
