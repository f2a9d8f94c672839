// Package transforms normalizes raw document fragments into final field shapes.
//
// Every transform is total over the fragments it documents and handles nil
// explicitly. Whether a transform runs when its query finds nothing is decided
// per field by the caller through expressions.AbsentPolicy:
//
//	Certificates(nil) -> empty map    (run on absent)
//	ReleaseDate(nil)  -> nil          (either policy)
//	Join(nil)         -> nil          (either policy)
//	NoneToEmpty(nil)  -> []string{}   (run on absent, fixed field set only)
package transforms

import (
	"fmt"
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/Ramsey-B/fern/pkg/models"
)

const (
	CertificateSeparator = " :: "
	VideoURL             = "https://www.imdb.com/video/"
)

// ReleaseDate assembles a {year, month, day} fragment into YYYY-MM-DD.
// Missing components default to 1, so a year-only date becomes YYYY-01-01.
func ReleaseDate(raw any) *string {
	if raw == nil {
		return nil
	}

	m := AsMap(raw)
	if m == nil {
		return nil
	}

	component := func(key string) int {
		if v := AsInt(m[key]); v != nil && *v != 0 {
			return *v
		}
		return 1
	}

	date := fmt.Sprintf("%04d-%02d-%02d", component("year"), component("month"), component("day"))
	return &date
}

// Join joins a list of scalars with a single space. A scalar is returned in
// its string form and nil stays nil.
func Join(raw any) *string {
	return JoinWith(raw, " ")
}

func JoinWith(raw any, separator string) *string {
	if raw == nil {
		return nil
	}

	list, ok := raw.([]any)
	if !ok {
		return AsString(raw)
	}

	present := ectolinq.Filter(list, func(item any) bool {
		return item != nil
	})
	parts := ectolinq.Map(present, func(item any) string {
		return String(item)
	})
	joined := strings.Join(parts, separator)
	return &joined
}

// NoneToEmpty turns an absent list into an empty one.
func NoneToEmpty(raw any) []string {
	if values := Strings(raw); values != nil {
		return values
	}
	return []string{}
}

// Certificates folds [country code, country name, rating, regions] tuples into
// one certificate per country. A second tuple for the same country is
// appended to the rating text after " :: " instead of replacing it.
func Certificates(raw any) map[string]models.Certificate {
	out := map[string]models.Certificate{}
	for _, item := range AsList(raw) {
		tuple := AsList(item)
		if len(tuple) < 3 {
			continue
		}

		code := String(tuple[0])
		rating := String(tuple[2]) + " " + strings.Join(Strings(Index(tuple, 3)), ", ")

		existing, ok := out[code]
		if !ok {
			out[code] = models.Certificate{Country: String(tuple[1]), Rating: rating}
			continue
		}
		existing.Rating += CertificateSeparator + rating
		out[code] = existing
	}
	return out
}

// MPAAReason returns the rating reason of the first certificate edge issued by
// the MPAA, or "" when there is none.
func MPAAReason(raw any) string {
	for _, edge := range AsList(raw) {
		if String(Dig(edge, "node", "ratingsBody", "id")) == "MPAA" {
			return String(Dig(edge, "node", "ratingReason"))
		}
	}
	return ""
}

// AspectRatios reads [ratio, attribute] pairs, replacing nulls with "".
func AspectRatios(raw any) []models.AspectRatio {
	list := AsList(raw)
	out := make([]models.AspectRatio, 0, len(list))
	for _, item := range list {
		pair := AsList(item)
		out = append(out, models.AspectRatio{
			Ratio:     String(Index(pair, 0)),
			Attribute: String(Index(pair, 1)),
		})
	}
	return out
}

// Awards reads a [wins, nominations, prestigious] node. Shorter nodes are
// accepted: missing counts are 0 and the prestigious award is only set when
// the third element is an object.
func Awards(raw any) models.Awards {
	node := AsList(raw)
	awards := models.Awards{
		Wins:        intOrZero(Index(node, 0)),
		Nominations: intOrZero(Index(node, 1)),
	}

	if prestigious := AsMap(Index(node, 2)); prestigious != nil {
		awards.PrestigiousAward = &models.PrestigiousAward{
			Name:        String(Dig(prestigious, "award", "text")),
			Wins:        intOrZero(prestigious["wins"]),
			Nominations: intOrZero(prestigious["nominations"]),
		}
	}

	return awards
}

// VoteRatings reads [id, rating, votes] triples in order.
func VoteRatings(raw any) []models.VoteRating {
	list := AsList(raw)
	out := make([]models.VoteRating, 0, len(list))
	for _, item := range list {
		triple := AsList(item)
		rating := AsFloat(Index(triple, 1))
		out = append(out, models.VoteRating{
			PrefixedID: String(Index(triple, 0)),
			Rating:     ectolinq.Ternary(rating != nil, deref(rating), 0),
			Votes:      intOrZero(Index(triple, 2)),
		})
	}
	return out
}

// Minutes converts a runtime in seconds to whole minutes, dropping leftover
// seconds: 8161 and 8219 are both 136. Zero and absent runtimes are nil.
func Minutes(raw any) *int {
	seconds := AsFloat(raw)
	if seconds == nil || *seconds == 0 {
		return nil
	}
	minutes := int(*seconds / 60)
	return &minutes
}

// Trailers turns video ids into watch URLs, skipping empty ids.
func Trailers(raw any) []string {
	ids := ectolinq.Filter(Strings(raw), func(id string) bool {
		return id != ""
	})
	return ectolinq.Map(ids, func(id string) string {
		return VideoURL + id
	})
}

// Years keeps four digit year strings, dropping placeholders like "Unknown".
func Years(raw any) []string {
	out := []string{}
	for _, item := range AsList(raw) {
		year, ok := item.(string)
		if !ok || len(year) != 4 || strings.Trim(year, "0123456789") != "" {
			continue
		}
		out = append(out, year)
	}
	return out
}

func intOrZero(raw any) int {
	if i := AsInt(raw); i != nil {
		return *i
	}
	if f := AsFloat(raw); f != nil {
		return int(*f)
	}
	return 0
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
