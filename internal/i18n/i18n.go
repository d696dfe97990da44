// Package i18n holds the panel's two string tables and the language enum.
//
// Lookups follow a key-value contract: T returns the translated string for a
// key, or the key itself when no translation exists.
package i18n

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Language is one of the two languages the device supports.
type Language string

const (
	// German is the primary language and the device default.
	German Language = "de"
	// English is the secondary language.
	English Language = "en"
)

// Default is used when the device reports no language or an unknown one.
const Default = German

var (
	supported = []language.Tag{language.German, language.English}
	matcher   = language.NewMatcher(supported)
	texts     = catalog.NewBuilder(catalog.Fallback(language.German))
)

// Parse maps a device language code (e.g. "en", "de-AT") to a Language.
// Unknown or empty codes resolve to Default.
func Parse(code string) Language {
	code = strings.TrimSpace(code)
	if code == "" {
		return Default
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default
	}
	if supported[idx] == language.English {
		return English
	}
	return German
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.German
}

// Other returns the other supported language.
func (l Language) Other() Language {
	if l == English {
		return German
	}
	return English
}

func (l Language) String() string {
	return strings.ToUpper(string(l))
}

// T returns the text for key in lang, falling back to the key itself.
func T(lang Language, key string) string {
	p := message.NewPrinter(lang.Tag(), message.Catalog(texts))
	return p.Sprintf(key)
}

// DayName returns the localized weekday name for day 0..6 (0 is Sunday).
func DayName(lang Language, day int) string {
	if day < 0 || day > 6 {
		return T(lang, "day") + " " + strconv.Itoa(day)
	}
	return T(lang, dayKeys[day])
}

var dayKeys = [7]string{"day_0", "day_1", "day_2", "day_3", "day_4", "day_5", "day_6"}

func init() {
	for key, text := range german {
		_ = texts.SetString(language.German, key, text)
	}
	for key, text := range english {
		_ = texts.SetString(language.English, key, text)
	}
}
