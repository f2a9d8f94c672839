// Package ids normalizes IMDb identifiers.
//
// Every entity carries the same identifier in three forms:
//
//	numeric:  0133093
//	prefixed: tt0133093
//	url:      https://www.imdb.com/title/tt0133093/
//
// The numeric form is always zero-padded to at least seven digits. Longer
// numbers are kept at full length.
package ids

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Width is the minimum number of digits in a numeric identifier.
const Width = 7

const baseURL = "https://www.imdb.com"

// Prefix is the two letter namespace of an identifier.
type Prefix string

const (
	Title   Prefix = "tt"
	Name    Prefix = "nm"
	Company Prefix = "co"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrUnknownPrefix     = errors.New("unknown identifier prefix")
)

// ID is a normalized identifier.
type ID struct {
	Prefix Prefix
	Number string
}

// Numeric returns the bare zero-padded number, e.g. "0133093".
func (id ID) Numeric() string {
	return id.Number
}

// Prefixed returns the namespaced form, e.g. "tt0133093".
func (id ID) Prefixed() string {
	return string(id.Prefix) + id.Number
}

// URL returns the canonical imdb.com address of the identifier.
func (id ID) URL() string {
	switch id.Prefix {
	case Title:
		return fmt.Sprintf("%s/title/%s/", baseURL, id.Prefixed())
	case Name:
		return fmt.Sprintf("%s/name/%s", baseURL, id.Prefixed())
	case Company:
		return fmt.Sprintf("%s/company/%s/", baseURL, id.Prefixed())
	default:
		return ""
	}
}

func (id ID) String() string {
	return id.Prefixed()
}

// IsZero reports whether the identifier was never set.
func (id ID) IsZero() bool {
	return id.Number == ""
}

// Normalize extracts the digits of input and pads them to Width.
//
// input may be a string in any form ("tt0133093", "133093", "tt00abc133093")
// or an integer. Leading zeros beyond the padding are dropped, so
// "tt00000133093" and 133093 both normalize to "0133093".
func Normalize(input any, prefix Prefix) (ID, error) {
	var raw string
	switch v := input.(type) {
	case string:
		raw = v
	case int:
		raw = strconv.Itoa(v)
	case int32:
		raw = strconv.FormatInt(int64(v), 10)
	case int64:
		raw = strconv.FormatInt(v, 10)
	case uint:
		raw = strconv.FormatUint(uint64(v), 10)
	case uint32:
		raw = strconv.FormatUint(uint64(v), 10)
	case uint64:
		raw = strconv.FormatUint(v, 10)
	case fmt.Stringer:
		raw = v.String()
	default:
		return ID{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidIdentifier, input)
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return ID{}, fmt.Errorf("%w: %q contains no digits", ErrInvalidIdentifier, raw)
	}

	return ID{Prefix: prefix, Number: canonical(digits)}, nil
}

// canonical drops leading zeros beyond the padding so every spelling of an
// identifier has one numeric form.
func canonical(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return pad(digits)
}

// Parse reads a strictly prefixed identifier such as "nm0000206".
// The residue after the prefix must be entirely numeric.
func Parse(prefixed string) (ID, error) {
	if len(prefixed) < 3 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, prefixed)
	}

	prefix := Prefix(prefixed[:2])
	switch prefix {
	case Title, Name, Company:
	default:
		return ID{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, prefixed)
	}

	number := prefixed[2:]
	for _, r := range number {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return ID{}, fmt.Errorf("%w: %q is not numeric after its prefix", ErrInvalidIdentifier, prefixed)
		}
	}

	return ID{Prefix: prefix, Number: canonical(number)}, nil
}

// ParseAs is Parse restricted to one namespace.
func ParseAs(prefixed string, prefix Prefix) (ID, error) {
	id, err := Parse(prefixed)
	if err != nil {
		return ID{}, err
	}
	if id.Prefix != prefix {
		return ID{}, fmt.Errorf("%w: expected %s identifier, got %q", ErrInvalidIdentifier, prefix, prefixed)
	}
	return id, nil
}

func pad(digits string) string {
	if len(digits) >= Width {
		return digits
	}
	return strings.Repeat("0", Width-len(digits)) + digits
}
