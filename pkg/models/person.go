package models

// Person is anyone credited on a title.
type Person struct {
	Identity
	Name string `json:"name" validate:"required"`
	Job  string `json:"job,omitempty"`
}

// CastRole is what a cast member played.
type CastRole struct {
	Characters []string `json:"characters"`
	PictureURL *string  `json:"picture_url"`
	Attributes *string  `json:"attributes"`
}

// CastMember is a Person with the role they played.
type CastMember struct {
	Person
	CastRole
}

// Credit is one entry of a title's Categories: a Person, or a CastMember when
// CastRole is set. The embedded pointer keeps both shapes in one JSON object.
type Credit struct {
	Person
	*CastRole
}

func NewCredit(p Person) Credit {
	return Credit{Person: p}
}

func NewCastCredit(c CastMember) Credit {
	role := c.CastRole
	return Credit{Person: c.Person, CastRole: &role}
}

func (c Credit) IsCast() bool {
	return c.CastRole != nil
}

// CastMember returns the cast view of c, if it has one.
func (c Credit) CastMember() (CastMember, bool) {
	if c.CastRole == nil {
		return CastMember{}, false
	}
	return CastMember{Person: c.Person, CastRole: *c.CastRole}, true
}

// CompanyInfo is a company credited on a title.
type CompanyInfo struct {
	Identity
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	Countries  []string `json:"countries"`
}

// PersonDetail is a name page.
type PersonDetail struct {
	Identity
	Name              string                  `json:"name" validate:"required"`
	KnownFor          []string                `json:"knownfor"`
	ImageURL          *string                 `json:"image_url"`
	Bio               *string                 `json:"bio"`
	Height            *string                 `json:"height"`
	PrimaryProfession []string                `json:"primary_profession"`
	BirthDate         *string                 `json:"birth_date"`
	BirthPlace        *string                 `json:"birth_place"`
	DeathDate         *string                 `json:"death_date"`
	DeathPlace        *string                 `json:"death_place"`
	DeathReason       *string                 `json:"death_reason"`
	Jobs              []string                `json:"jobs"`
	Credits           map[string][]TitleBrief `json:"credits" validate:"dive,dive"`
	UnreleasedCredits map[string][]TitleBrief `json:"unreleased_credits" validate:"dive,dive"`
}
