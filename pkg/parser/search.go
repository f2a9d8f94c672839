package parser

import (
	"github.com/Ramsey-B/fern/pkg/builders"
	"github.com/Ramsey-B/fern/pkg/models"
)

const searchEntity = "search"

var (
	qTitleResults = query("titleResults.results")
	qNameResults  = query("nameResults.results")
)

// ParseSearchResults parses a find page. Title and name results are built
// independently; an entry missing its id or name is dropped.
func (p *Parser) ParseSearchResults(document any) (*models.SearchResult, error) {
	x, err := p.begin(searchEntity, document, "props.pageProps")
	if err != nil {
		return nil, err
	}

	result := &models.SearchResult{
		Titles: field(x, "titles", builders.Collect(x.list(qTitleResults), builders.SearchTitle, x.skip("titles"))),
		Names:  field(x, "names", builders.Collect(x.list(qNameResults), builders.SearchName, x.skip("names"))),
	}

	if err := x.finish(result); err != nil {
		return nil, err
	}
	return result, nil
}
