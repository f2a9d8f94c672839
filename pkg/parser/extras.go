package parser

import (
	"github.com/Ramsey-B/fern/pkg/builders"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

// GraphQL responses wrap their payload as data.title or data.name. A bare
// payload is accepted too.
const (
	graphQLTitleRoot = "data.title || @"
	graphQLNameRoot  = "data.name || @"
)

const (
	akasEntity        = "akas"
	filmographyEntity = "filmography"
	triviaEntity      = "trivia"
	reviewsEntity     = "reviews"
)

var (
	qGraphQLID    = query("id")
	qAkas         = query("akas.edges[].node.[title, country.code, country.name, language.code, language.name]")
	qFilmography  = query("credits.edges[].node")
	qTriviaEdges  = query("trivia.edges")
	qReviewsEdges = query("reviews.edges")
)

// ParseAkas parses the alternate titles of a title.
func (p *Parser) ParseAkas(document any) (*models.Akas, error) {
	x, err := p.begin(akasEntity, document, graphQLTitleRoot, "id")
	if err != nil {
		return nil, err
	}

	akas := &models.Akas{
		PrefixedID: value(x, qGraphQLID, transforms.String),
		Akas:       field(x, "akas", builders.Collect(x.list(qAkas), builders.Aka, x.skip("akas"))),
	}

	if err := x.finish(akas); err != nil {
		return nil, err
	}
	return akas, nil
}

// ParseFilmography parses the credits of a name, grouped by category.
func (p *Parser) ParseFilmography(document any) (*models.Filmography, error) {
	x, err := p.begin(filmographyEntity, document, graphQLNameRoot, "id")
	if err != nil {
		return nil, err
	}

	filmography := &models.Filmography{
		PrefixedID: value(x, qGraphQLID, transforms.String),
		Credits:    field(x, "credits", builders.GroupFilmography(x.run(qFilmography), x.skip("credits"))),
	}

	if err := x.finish(filmography); err != nil {
		return nil, err
	}
	return filmography, nil
}

// ParseTrivia parses the trivia items of a title.
func (p *Parser) ParseTrivia(document any) ([]models.TriviaItem, error) {
	x, err := p.begin(triviaEntity, document, graphQLTitleRoot, "trivia")
	if err != nil {
		return nil, err
	}

	items := field(x, "trivia", builders.Collect(x.list(qTriviaEdges), builders.Trivia, x.skip("trivia")))
	if x.err != nil {
		return nil, x.err
	}
	return items, nil
}

// ParseReviews parses the user reviews of a title.
func (p *Parser) ParseReviews(document any) ([]models.ReviewItem, error) {
	x, err := p.begin(reviewsEntity, document, graphQLTitleRoot, "reviews")
	if err != nil {
		return nil, err
	}

	reviews := field(x, "reviews", builders.Collect(x.list(qReviewsEdges), builders.Review, x.skip("reviews")))
	if x.err != nil {
		return nil, x.err
	}
	return reviews, nil
}
