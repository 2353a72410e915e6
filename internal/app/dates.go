package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// InvalidDate is rendered for event dates that cannot be parsed
const InvalidDate = "Invalid Date"

// DateOptions controls how event dates are rendered
type DateOptions struct {
	Locale   language.Tag
	Location *time.Location // nil means time.Local
}

type dateStyle struct {
	months [12]string
	format func(day int, month string, year int) string
}

var englishMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// First entry is the fallback when nothing matches
var supportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var dateStyles = []dateStyle{
	{
		months: englishMonths,
		format: func(d int, m string, y int) string { return fmt.Sprintf("%s %d, %d", m, d, y) },
	},
	{
		months: englishMonths,
		format: func(d int, m string, y int) string { return fmt.Sprintf("%d %s %d", d, m, y) },
	},
	{
		months: [12]string{
			"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember",
		},
		format: func(d int, m string, y int) string { return fmt.Sprintf("%d. %s %d", d, m, y) },
	},
	{
		months: [12]string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		format: func(d int, m string, y int) string { return fmt.Sprintf("%d %s %d", d, m, y) },
	},
	{
		months: [12]string{
			"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
		},
		format: func(d int, m string, y int) string { return fmt.Sprintf("%d de %s de %d", d, m, y) },
	},
}

// Layouts tried in order. Zoned timestamps are converted to the display
// location, bare date-times are read in it, bare dates are kept as-is.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// FormatEventDate renders a date-like string in long form, e.g. "May 1, 2023"
func FormatEventDate(raw string, opts DateOptions) string {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	year, month, day, ok := parseEventDate(strings.TrimSpace(raw), loc)
	if !ok {
		return InvalidDate
	}

	style := styleFor(opts.Locale)
	return style.format(day, style.months[month-1], year)
}

func parseEventDate(raw string, loc *time.Location) (int, time.Month, int, bool) {
	if raw == "" {
		return 0, 0, 0, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.In(loc).Date()
			return y, m, d, true
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			y, m, d := t.Date()
			return y, m, d, true
		}
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return y, m, d, true
		}
	}
	return 0, 0, 0, false
}

func styleFor(tag language.Tag) dateStyle {
	_, idx, _ := localeMatcher.Match(tag)
	return dateStyles[idx]
}

// ResolveLocale picks the supported locale closest to the configured one,
// or to the process locale (LC_ALL, LC_TIME, LANG) when none is configured.
func ResolveLocale(configured string) language.Tag {
	raw := configured
	if raw == "" {
		raw = systemLocale()
	}
	tag, err := language.Parse(normalizeLocale(raw))
	if err != nil {
		return supportedLocales[0]
	}
	_, idx, _ := localeMatcher.Match(tag)
	return supportedLocales[idx]
}

func systemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// normalizeLocale turns POSIX values like "de_DE.UTF-8@euro" into BCP 47
func normalizeLocale(raw string) string {
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "C" || raw == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(raw, "_", "-")
}
