// Package locale lists the site languages pages can be fetched in.
package locale

import (
	"strings"

	"github.com/Gobusters/ectolinq"
)

// Default is used when no locale is configured or the configured one is
// not supported. Default pages have no language segment in their URL.
const Default = "en"

// Supported lists every locale the site serves.
var Supported = []string{"en", "fr-ca", "fr", "hi", "de", "it", "es", "pt", "es-es"}

func IsSupported(locale string) bool {
	return ectolinq.Contains(Supported, strings.ToLower(locale))
}

// Normalize lower-cases locale and falls back to Default when it is empty or
// unsupported. ok is false only for a non-empty unsupported locale, so the
// caller can warn about it.
func Normalize(locale string) (normalized string, ok bool) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return Default, true
	}
	if !IsSupported(locale) {
		return Default, false
	}
	return locale, true
}

// Resolve picks the first non-empty locale in priority order, e.g. the
// request's locale before the configured one.
func Resolve(candidates ...string) string {
	for _, candidate := range candidates {
		if candidate != "" {
			normalized, _ := Normalize(candidate)
			return normalized
		}
	}
	return Default
}

// URLSegment returns the path segment for locale, "" for Default.
func URLSegment(locale string) string {
	normalized, _ := Normalize(locale)
	if normalized == Default {
		return ""
	}
	return normalized
}
