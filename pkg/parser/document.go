package parser

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/fern/pkg/errors"
)

// DocumentType names the page or payload a raw document was taken from.
type DocumentType string

const (
	DocumentTitle       DocumentType = "title"
	DocumentSearch      DocumentType = "search"
	DocumentPerson      DocumentType = "person"
	DocumentSeason      DocumentType = "season"
	DocumentEpisodes    DocumentType = "episodes"
	DocumentAkas        DocumentType = "akas"
	DocumentFilmography DocumentType = "filmography"
	DocumentTrivia      DocumentType = "trivia"
	DocumentReviews     DocumentType = "reviews"
)

// DocumentTypes lists every type ParseDocument accepts.
var DocumentTypes = []DocumentType{
	DocumentTitle, DocumentSearch, DocumentPerson, DocumentSeason, DocumentEpisodes,
	DocumentAkas, DocumentFilmography, DocumentTrivia, DocumentReviews,
}

// ParseDocumentType accepts a document type case-insensitively.
func ParseDocumentType(raw string) (DocumentType, error) {
	docType := DocumentType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range DocumentTypes {
		if docType == known {
			return docType, nil
		}
	}
	return "", fmt.Errorf("%w: unknown document type %q", errors.ErrInvalidInput, raw)
}

// ParseDocument parses document as docType and returns the typed record.
func (p *Parser) ParseDocument(docType DocumentType, document any) (any, error) {
	switch docType {
	case DocumentTitle:
		return p.ParseTitle(document)
	case DocumentSearch:
		return p.ParseSearchResults(document)
	case DocumentPerson:
		return p.ParsePerson(document)
	case DocumentSeason:
		return p.ParseSeasonEpisodes(document)
	case DocumentEpisodes:
		return p.ParseBulkEpisodes(document)
	case DocumentAkas:
		return p.ParseAkas(document)
	case DocumentFilmography:
		return p.ParseFilmography(document)
	case DocumentTrivia:
		return p.ParseTrivia(document)
	case DocumentReviews:
		return p.ParseReviews(document)
	default:
		return nil, fmt.Errorf("%w: unknown document type %q", errors.ErrInvalidInput, docType)
	}
}
