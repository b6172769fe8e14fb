// Package translate formats user-facing messages for the s16vm tools in the
// language of the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when no locale can be determined.
const Fallback = "en-US"

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("s16vm: locale: %v", err)
	}

	tag = Match(locales...)
	printer = message.NewPrinter(tag)
}

// Match returns the best language for the locales, falling back to en-US.
func Match(locales ...string) language.Tag {
	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	return message.MatchLanguage(locales...)
}

// Tag returns the language the messages are rendered in.
func Tag() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
