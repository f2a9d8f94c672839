package builders

import (
	"github.com/Ramsey-B/fern/pkg/ids"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

const (
	JobDirector = "Director"
	JobCreator  = "Creator"
	JobCast     = "Cast"
)

func person(fragment any, idPath, namePath, job string) (models.Person, error) {
	prefixed, err := requiredString(fragment, idPath)
	if err != nil {
		return models.Person{}, err
	}
	name, err := requiredString(fragment, namePath)
	if err != nil {
		return models.Person{}, err
	}
	ident, err := identity(prefixed, ids.Name)
	if err != nil {
		return models.Person{}, err
	}
	return models.Person{Identity: ident, Name: name, Job: job}, nil
}

// Director builds a person from a directorsPageTitle credit.
// Requires name.id and name.nameText.text.
func Director(fragment any) (models.Person, error) {
	return person(fragment, "name.id", "name.nameText.text", JobDirector)
}

// Creator builds a person from a creatorsPageTitle credit.
// Requires name.id and name.nameText.text.
func Creator(fragment any) (models.Person, error) {
	return person(fragment, "name.id", "name.nameText.text", JobCreator)
}

// Star builds a person from a castPageTitle edge.
// Requires node.name.id and node.name.nameText.text.
func Star(fragment any) (models.Person, error) {
	return person(fragment, "node.name.id", "node.name.nameText.text", JobCast)
}

// SearchName builds a person from a find page name result.
// Requires id and displayNameText.
func SearchName(fragment any) (models.Person, error) {
	p, err := person(fragment, "id", "displayNameText", "")
	if err != nil {
		return models.Person{}, err
	}
	p.Job = transforms.String(transforms.Dig(fragment, "knownForJobCategory"))
	return p, nil
}

// CategoryCredit builds one entry of a title credit category section.
// Requires id and rowTitle. Entries flagged isCast become cast members; the
// others take job as their role label.
func CategoryCredit(job string) Builder[models.Credit] {
	return func(fragment any) (models.Credit, error) {
		isCast := transforms.AsBool(transforms.Dig(fragment, "isCast"))
		if isCast == nil || !*isCast {
			p, err := person(fragment, "id", "rowTitle", job)
			if err != nil {
				return models.Credit{}, err
			}
			return models.NewCredit(p), nil
		}

		member, err := CastMember(fragment)
		if err != nil {
			return models.Credit{}, err
		}
		return models.NewCastCredit(member), nil
	}
}

// CastMember builds a cast member from a credit category item.
// Requires id and rowTitle.
func CastMember(fragment any) (models.CastMember, error) {
	p, err := person(fragment, "id", "rowTitle", JobCast)
	if err != nil {
		return models.CastMember{}, err
	}

	characters := transforms.Strings(transforms.Dig(fragment, "characters"))
	if characters == nil {
		characters = []string{}
	}

	return models.CastMember{
		Person: p,
		CastRole: models.CastRole{
			Characters: characters,
			PictureURL: optionalString(fragment, "imageProps.imageModel.url"),
			Attributes: optionalString(fragment, "attributes"),
		},
	}, nil
}

// Company builds a company credit from a companyCredits edge node.
// Requires company.id.
func Company(fragment any) (models.CompanyInfo, error) {
	prefixed, err := requiredString(fragment, "company.id")
	if err != nil {
		return models.CompanyInfo{}, err
	}
	ident, err := identity(prefixed, ids.Company)
	if err != nil {
		return models.CompanyInfo{}, err
	}

	return models.CompanyInfo{
		Identity:   ident,
		Name:       transforms.String(transforms.Dig(fragment, "displayableProperty", "value", "plainText")),
		Attributes: texts(transforms.Dig(fragment, "attributes")),
		Countries:  texts(transforms.Dig(fragment, "countries")),
	}, nil
}

// texts reads the text key of every object in a list, keeping nil for an
// absent list.
func texts(raw any) []string {
	list := transforms.AsList(raw)
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if text := transforms.AsString(transforms.Dig(item, "text")); text != nil {
			out = append(out, *text)
		}
	}
	return out
}
