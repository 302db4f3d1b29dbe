// Package i18n provides display-string localization for the two supported
// languages: UI labels, air-quality tier texts, world-city names, and ISO
// region code resolution.
package i18n

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrMissingTranslation is returned when a key is absent from the table of
// the requested language. There is no fallback language; tables must stay
// complete and tests fail loudly on gaps.
var ErrMissingTranslation = errors.New("missing translation key")

// Language identifies a supported display language.
type Language string

const (
	Korean  Language = "ko"
	English Language = "en"
)

// Tag returns the BCP 47 language tag used for region name resolution and
// provider lang= parameters.
func (l Language) Tag() language.Tag {
	if l == Korean {
		return language.Korean
	}
	return language.English
}

// Translate looks up key in the table of the requested language.
func Translate(key string, lang Language) (string, error) {
	table, ok := tables[lang]
	if !ok {
		return "", ErrMissingTranslation
	}
	s, ok := table[key]
	if !ok {
		return "", ErrMissingTranslation
	}
	return s, nil
}

// MustTranslate is Translate for keys known at compile time. It panics on a
// missing key, which is a table maintenance bug rather than a runtime
// condition.
func MustTranslate(key string, lang Language) string {
	s, err := Translate(key, lang)
	if err != nil {
		panic("i18n: missing key " + key + " for " + string(lang))
	}
	return s
}

// CityName returns the localized name of a known world city, or the input
// unchanged when the city is not in the table.
func CityName(name string, lang Language) string {
	if lang != Korean {
		return name
	}
	if localized, ok := koreanCityNames[name]; ok {
		return localized
	}
	return name
}

// CountryName resolves an ISO region code to its display name in the
// requested language. Unsupported codes come back unchanged instead of
// failing, matching how the UI degrades for exotic regions.
func CountryName(code string, lang Language) string {
	if code == "" {
		return ""
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	name := display.Regions(lang.Tag()).Name(region)
	if name == "" {
		return code
	}
	return name
}
