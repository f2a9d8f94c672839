package models

import (
	"encoding/json"
	"fmt"
)

// StoredTitle is the serialized form of a TitleRecord that remembers its
// variant, so it can be decoded back into the same concrete type.
type StoredTitle struct {
	Record TitleRecord
}

type storedTitle struct {
	Variant Variant         `json:"variant"`
	Record  json.RawMessage `json:"record"`
}

func (s StoredTitle) MarshalJSON() ([]byte, error) {
	if s.Record == nil {
		return []byte("null"), nil
	}
	record, err := json.Marshal(s.Record)
	if err != nil {
		return nil, err
	}
	return json.Marshal(storedTitle{Variant: s.Record.Variant(), Record: record})
}

func (s *StoredTitle) UnmarshalJSON(raw []byte) error {
	var stored storedTitle
	if err := json.Unmarshal(raw, &stored); err != nil {
		return err
	}

	var record TitleRecord
	switch stored.Variant {
	case VariantSeries:
		record = &SeriesTitle{}
	case VariantEpisode:
		record = &EpisodeTitle{}
	case VariantTitle:
		record = &Title{}
	default:
		return fmt.Errorf("unknown title variant %q", stored.Variant)
	}

	if err := json.Unmarshal(stored.Record, record); err != nil {
		return err
	}
	s.Record = record
	return nil
}
