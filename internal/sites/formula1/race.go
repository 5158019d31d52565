package formula1

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrIncompleteRace is returned when a race link lacks the id or slug needed
// to build its session URLs.
var ErrIncompleteRace = errors.New("race link has no identifier or slug")

// Race is one grand prix weekend as listed on a season's results page.
type Race struct {
	Name       string   // Display name, e.g. "Emilia Romagna"
	Year       int      // Season
	Identifier string   // Numeric race id from the URL
	Slug       string   // URL-safe race name, e.g. "emilia-romagna"
	URL        string   // Link as published on the listing page
	URLParts   []string // Path segments of URL
}

// Complete reports whether session URLs can be built for r.
func (r Race) Complete() bool {
	return r.Identifier != "" && r.Slug != ""
}

// DisplayName turns a URL slug into a human-readable race name.
func DisplayName(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// fallbackName cleans anchor text such as "Flag of BahrainBahrain" when the
// link does not carry a slug.
func fallbackName(text string) string {
	text = strings.ReplaceAll(text, "Flag of ", "")
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(text, " "))
}

// parseRaceLink builds a Race from a listing link. Links without a "races"
// path segment are not race links and yield false.
func parseRaceLink(href, text string, year int) (Race, bool) {
	path := href
	if u, err := url.Parse(href); err == nil {
		path = u.Path
	}

	parts := strings.Split(path, "/")
	idx := lo.IndexOf(parts, "races")
	if idx < 0 {
		return Race{}, false
	}

	race := Race{
		Year:     year,
		URL:      href,
		URLParts: parts,
	}
	if len(parts) > idx+1 {
		race.Identifier = parts[idx+1]
	}
	if len(parts) > idx+2 {
		race.Slug = parts[idx+2]
	}

	if race.Slug != "" {
		race.Name = DisplayName(race.Slug)
	} else {
		race.Name = fallbackName(text)
	}
	return race, true
}
