package parser

import (
	"github.com/Ramsey-B/fern/pkg/builders"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/ids"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

const personEntity = "person"

// Name page queries, relative to props.pageProps. The second query of each
// pair reads the shape older pages used.
var (
	qPersonID         = query("aboveTheFold.id")
	qPersonIDFallback = query("mainColumnData.id")
	qPersonName       = query("aboveTheFold.nameText.text")
	qKnownFor         = query("mainColumnData.knownForFeatureV2.credits[*].title.titleText.text")
	qKnownForLegacy   = query("mainColumnData.knownForFeature.edges[].node.title.titleText.text")
	qPersonImage      = query("aboveTheFold.primaryImage.url")
	qBio              = query("aboveTheFold.bio.text.plainText")
	qHeight           = query("mainColumnData.height.displayableProperty.value.plainText")
	qProfessions      = query("aboveTheFold.primaryProfessions[].category.id")
	qBirthDate        = query("aboveTheFold.birthDate.date")
	qBirthPlace       = query("mainColumnData.birthLocation.text")
	qDeathDate        = query("aboveTheFold.deathDate.date")
	qDeathPlace       = query("mainColumnData.deathLocation.text")
	qDeathReason      = query("mainColumnData.deathReason.text")
	qJobs             = query("mainColumnData.professions[*].professionCategory.linkedCreditCategory.categoryId")
	qJobsLegacy       = query("mainColumnData.jobs[].category.id")
	qReleased         = query("mainColumnData.released.edges[].node")
	qReleasedLegacy   = query("mainColumnData.releasedPrimaryCredits[].credits[].edges[].node.[category.id, title.id, title.originalTitleText.text, title.titleType.id, title.primaryImage.url, title.releaseYear.year]")
	qUnreleased       = query("mainColumnData.unreleased.edges[].node")
)

// ParsePerson parses a name page. errors.ErrNotFound is returned when the
// document has no person.
func (p *Parser) ParsePerson(document any) (*models.PersonDetail, error) {
	x, err := p.begin(personEntity, document, "props.pageProps", "aboveTheFold", "mainColumnData")
	if err != nil {
		return nil, err
	}

	person := &models.PersonDetail{}

	prefixed := value(x, qPersonID, transforms.String)
	if prefixed == "" {
		prefixed = value(x, qPersonIDFallback, transforms.String)
	}
	id, err := ids.ParseAs(prefixed, ids.Name)
	if err != nil {
		return nil, errors.NewParseErrorf("%w", err).AddEntity(personEntity).AddField("imdbId")
	}
	person.Identity = models.NewIdentity(id)

	person.Name = field(x, "name", value(x, qPersonName, transforms.String))

	knownFor := value(x, qKnownFor, transforms.Strings)
	if knownFor == nil {
		knownFor = value(x, qKnownForLegacy, transforms.Strings)
	}
	person.KnownFor = field(x, "knownfor", knownFor)

	person.ImageURL = field(x, "image_url", value(x, qPersonImage, transforms.AsString))
	person.Bio = field(x, "bio", value(x, qBio, transforms.AsString))
	person.Height = field(x, "height", value(x, qHeight, transforms.AsString))
	person.PrimaryProfession = field(x, "primary_profession", value(x, qProfessions, transforms.Strings))
	person.BirthDate = field(x, "birth_date", value(x, qBirthDate, transforms.AsString))
	person.BirthPlace = field(x, "birth_place", value(x, qBirthPlace, transforms.AsString))
	person.DeathDate = field(x, "death_date", value(x, qDeathDate, transforms.AsString))
	person.DeathPlace = field(x, "death_place", value(x, qDeathPlace, transforms.AsString))
	person.DeathReason = field(x, "death_reason", value(x, qDeathReason, transforms.AsString))

	jobs := x.run(qJobs)
	if jobs == nil {
		jobs = x.run(qJobsLegacy)
	}
	person.Jobs = field(x, "jobs", builders.Jobs(jobs))

	var credits map[string][]models.TitleBrief
	if released := x.run(qReleased); released != nil {
		credits = builders.GroupEdgeCredits(released, x.skip("credits"))
	} else {
		credits = builders.GroupFlatCredits(x.run(qReleasedLegacy), x.skip("credits"))
	}
	person.Credits = field(x, "credits", credits)
	person.UnreleasedCredits = field(x, "unreleased_credits", builders.GroupEdgeCredits(x.run(qUnreleased), x.skip("unreleased_credits")))

	if err := x.finish(person); err != nil {
		return nil, err
	}
	return person, nil
}
