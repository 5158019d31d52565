package formula1

import (
	"fmt"
	"strings"

	"f1results/internal/extractor"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultBaseURL = "https://www.formula1.com"
	resultsPath    = "/en/results"
)

// Target is a session results page to visit.
type Target struct {
	Session Session
	URL     string
}

// Site builds URLs for the results website.
type Site struct {
	baseURL string
}

// NewSite returns a Site rooted at baseURL, or DefaultBaseURL when empty.
func NewSite(baseURL string) *Site {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Site{baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the scheme and host every path is resolved against.
func (s *Site) BaseURL() string {
	return s.baseURL
}

// Resolve makes a site-relative link absolute. Absolute links are returned as is.
func (s *Site) Resolve(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return s.baseURL + ref
}

// ListingURL is the page listing every race of a season.
func (s *Site) ListingURL(year int) string {
	return s.Resolve(fmt.Sprintf("%s/%d/races", resultsPath, year))
}

// RacePath is the site-relative path all session pages of r hang off.
func (s *Site) RacePath(r Race) (string, error) {
	if !r.Complete() {
		return "", fmt.Errorf("%s (%d): %w", r.Name, r.Year, ErrIncompleteRace)
	}
	return fmt.Sprintf("%s/%d/races/%s/%s", resultsPath, r.Year, r.Identifier, r.Slug), nil
}

// SessionTargets returns one Target per collected session, in scrape order.
func (s *Site) SessionTargets(r Race) ([]Target, error) {
	base, err := s.RacePath(r)
	if err != nil {
		return nil, err
	}

	targets := make([]Target, 0, len(sessions))
	for _, session := range sessions {
		targets = append(targets, Target{
			Session: session,
			URL:     s.Resolve(base + "/" + string(session.Kind)),
		})
	}
	return targets, nil
}

// ParseRaces extracts the races of a season from its rendered listing page.
// A page without a results table yields no races; that is expected for
// seasons whose schedule is not published yet.
func ParseRaces(html string, year int) []Race {
	table, ok := extractor.LocateHTML(html)
	if !ok {
		return nil
	}

	var races []Race
	table.Find("tbody").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 1 {
			return
		}
		link := cols.First().Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		if race, ok := parseRaceLink(href, link.Text(), year); ok {
			races = append(races, race)
		}
	})
	return races
}
