package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Ramsey-B/fern/pkg/ids"
	"github.com/Ramsey-B/fern/pkg/locale"
)

// BaseURL is the site every page is fetched from.
const BaseURL = "https://www.imdb.com"

// pageURL joins path onto the base URL, inserting the locale segment for
// any locale but the default.
func pageURL(base, loc, path string) string {
	base = strings.TrimSuffix(base, "/")
	if segment := locale.URLSegment(loc); segment != "" {
		return fmt.Sprintf("%s/%s%s", base, segment, path)
	}
	return base + path
}

func titleURL(base, loc string, id ids.ID) string {
	return pageURL(base, loc, fmt.Sprintf("/title/%s/reference", id.Prefixed()))
}

func nameURL(base, loc string, id ids.ID) string {
	return pageURL(base, loc, fmt.Sprintf("/name/%s/", id.Prefixed()))
}

func searchURL(base, loc, query string) string {
	return pageURL(base, loc, "/find/?"+url.Values{"q": {query}, "ref_": {"nv_sr_sm"}}.Encode())
}

func seasonURL(base, loc string, id ids.ID, season int) string {
	return pageURL(base, loc, fmt.Sprintf("/title/%s/episodes/?season=%d", id.Prefixed(), season))
}

func episodesURL(base, loc string, id ids.ID) string {
	query := url.Values{"series": {id.Prefixed()}, "sort": {"release_date,asc"}, "count": {"250"}}
	return pageURL(base, loc, "/search/title/?"+query.Encode())
}
