package models

// SearchResult holds the two independent result lists of a find page.
type SearchResult struct {
	Titles []TitleBrief `json:"titles" validate:"dive"`
	Names  []Person     `json:"names" validate:"dive"`
}

// AkaRecord is one alternate title. A missing country is reported as the
// United States, which is where the site files untagged akas.
type AkaRecord struct {
	Title        string  `json:"title" validate:"required"`
	CountryCode  string  `json:"country_code"`
	CountryName  string  `json:"country_name"`
	LanguageCode *string `json:"language_code"`
	LanguageName *string `json:"language_name"`
}

const (
	DefaultAkaCountryCode = "US"
	DefaultAkaCountryName = "United States"
)

type Akas struct {
	PrefixedID string      `json:"imdbId"`
	Akas       []AkaRecord `json:"akas" validate:"dive"`
}

// Filmography groups a person's titles by credit category.
type Filmography struct {
	PrefixedID string                  `json:"imdbId"`
	Credits    map[string][]TitleBrief `json:"credits" validate:"dive,dive"`
}

type InterestScore struct {
	UsersVoted      int `json:"users_voted"`
	UsersInterested int `json:"users_interested"`
}

type TriviaItem struct {
	Body          *string        `json:"body"`
	InterestScore *InterestScore `json:"interest_score"`
}

type ReviewItem struct {
	Spoiler      *bool   `json:"spoiler"`
	Summary      *string `json:"summary"`
	Text         *string `json:"text"`
	AuthorRating *int    `json:"author_rating"`
	UpVotes      *int    `json:"up_votes"`
	DownVotes    *int    `json:"down_votes"`
}
