package models

// Variant is the concrete shape a title record resolves to.
type Variant string

const (
	VariantTitle   Variant = "title"
	VariantSeries  Variant = "series"
	VariantEpisode Variant = "episode"
)

var seriesKinds = map[string]struct{}{
	"tvSeries":      {},
	"tvMiniSeries":  {},
	"podcastSeries": {},
}

var episodeKinds = map[string]struct{}{
	"tvEpisode":      {},
	"podcastEpisode": {},
}

func IsSeriesKind(kind string) bool {
	_, ok := seriesKinds[kind]
	return ok
}

func IsEpisodeKind(kind string) bool {
	_, ok := episodeKinds[kind]
	return ok
}

// ResolveVariant maps a title type discriminator to its record variant.
// Unknown kinds, including new ones the site introduces, resolve to
// VariantTitle.
func ResolveVariant(kind string) Variant {
	switch {
	case IsSeriesKind(kind):
		return VariantSeries
	case IsEpisodeKind(kind):
		return VariantEpisode
	default:
		return VariantTitle
	}
}
