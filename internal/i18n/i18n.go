// Package i18n holds the user-facing strings and their translations.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

// Catalog formats messages for one language.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a catalog for lang (a BCP 47 tag such as "es" or "en-GB").
// Unknown or empty tags fall back to English.
func New(lang string) *Catalog {
	tag := language.English
	if lang != "" {
		if requested, err := language.Parse(lang); err == nil {
			_, idx, conf := matcher.Match(requested)
			if conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return &Catalog{tag: tag, printer: message.NewPrinter(tag)}
}

// Language returns the matched language tag.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// T formats the message registered under key.
func (c *Catalog) T(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}
