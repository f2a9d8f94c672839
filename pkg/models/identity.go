package models

import "github.com/Ramsey-B/fern/pkg/ids"

// Identity is the identifier block shared by every entity. ID and IMDbID hold
// the same numeric form; both are serialized for consumers of either name.
type Identity struct {
	ID         string `json:"id" validate:"required,numeric"`
	IMDbID     string `json:"imdb_id" validate:"required,eqfield=ID"`
	PrefixedID string `json:"imdbId" validate:"required"`
	URL        string `json:"url" validate:"required,url"`
}

func NewIdentity(id ids.ID) Identity {
	return Identity{
		ID:         id.Numeric(),
		IMDbID:     id.Numeric(),
		PrefixedID: id.Prefixed(),
		URL:        id.URL(),
	}
}

// Identifier re-parses the prefixed form.
func (i Identity) Identifier() (ids.ID, error) {
	return ids.Parse(i.PrefixedID)
}
