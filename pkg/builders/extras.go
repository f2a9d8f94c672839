package builders

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

// Aka reads a [title, country code, country name, language code, language
// name] tuple. Requires the title position. A missing country is reported as
// the United States.
func Aka(fragment any) (models.AkaRecord, error) {
	tuple := transforms.AsList(fragment)

	title := transforms.String(transforms.Index(tuple, 0))
	if title == "" {
		return models.AkaRecord{}, errors.MissingKey("[0]")
	}

	aka := models.AkaRecord{
		Title:        title,
		CountryCode:  models.DefaultAkaCountryCode,
		CountryName:  models.DefaultAkaCountryName,
		LanguageCode: transforms.AsString(transforms.Index(tuple, 3)),
		LanguageName: transforms.AsString(transforms.Index(tuple, 4)),
	}
	if code := transforms.AsString(transforms.Index(tuple, 1)); code != nil {
		aka.CountryCode = *code
	}
	if name := transforms.AsString(transforms.Index(tuple, 2)); name != nil {
		aka.CountryName = *name
	}
	return aka, nil
}

// Trivia builds a trivia item from a trivia edge. Nothing is required.
func Trivia(fragment any) (models.TriviaItem, error) {
	node := transforms.Dig(fragment, "node")

	item := models.TriviaItem{
		Body: optionalString(node, "displayableArticle.body.plaidHtml"),
	}
	if score := transforms.AsMap(transforms.Dig(node, "interestScore")); score != nil {
		item.InterestScore = &models.InterestScore{
			UsersVoted:      intOrZero(score["usersVoted"]),
			UsersInterested: intOrZero(score["usersInterested"]),
		}
	}
	return item, nil
}

// Review builds a review from a reviews edge. Nothing is required.
func Review(fragment any) (models.ReviewItem, error) {
	node := transforms.Dig(fragment, "node")

	return models.ReviewItem{
		Spoiler:      transforms.AsBool(transforms.Dig(node, "spoiler")),
		Summary:      optionalString(node, "summary.originalText"),
		Text:         optionalString(node, "text.originalText.plaidHtml"),
		AuthorRating: transforms.AsInt(transforms.Dig(node, "authorRating")),
		UpVotes:      transforms.AsInt(transforms.Dig(node, "helpfulness", "upVotes")),
		DownVotes:    transforms.AsInt(transforms.Dig(node, "helpfulness", "downVotes")),
	}, nil
}

func intOrZero(raw any) int {
	if i := transforms.AsInt(raw); i != nil {
		return *i
	}
	return 0
}
