package formula1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"emilia-romagna": "Emilia Romagna",
		"bahrain":        "Bahrain",
		"united-states":  "United States",
		"mexico":         "Mexico",
	}
	for slug, want := range tests {
		assert.Equal(t, want, DisplayName(slug), slug)
	}
}

func TestSessionTargets(t *testing.T) {
	site := NewSite("")
	wantKinds := []SessionKind{
		SessionSprintQualifying,
		SessionSprint,
		SessionQualifying,
		SessionStartingGrid,
		SessionFastestLaps,
		SessionPitStopSummary,
		SessionRaceResult,
	}

	for _, id := range []string{"1234", "1", "99999"} {
		race := Race{Name: "Bahrain", Year: 2025, Identifier: id, Slug: "bahrain"}
		targets, err := site.SessionTargets(race)
		require.NoError(t, err)
		require.Len(t, targets, 7)
		for i, target := range targets {
			assert.Equal(t, wantKinds[i], target.Session.Kind)
			assert.Equal(t,
				"https://www.formula1.com/en/results/2025/races/"+id+"/bahrain/"+string(wantKinds[i]),
				target.URL)
		}
	}
}

func TestSessionTargetsIncompleteRace(t *testing.T) {
	_, err := NewSite("").SessionTargets(Race{Name: "Bahrain", Year: 2025, Identifier: "1234"})
	assert.ErrorIs(t, err, ErrIncompleteRace)
}

func TestSessionLabels(t *testing.T) {
	labels := make([]string, 0, 7)
	for _, s := range Sessions() {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{
		"Sprint_Qualifying", "Sprint_Results", "Qualifying", "Starting_Grid",
		"Fastest_Laps", "Pit_Stop_Summary", "Race_Result",
	}, labels)

	assert.True(t, Session{Kind: SessionSprintQualifying}.IsSprint())
	assert.True(t, Session{Kind: SessionSprint}.IsSprint())
	assert.False(t, Session{Kind: SessionRaceResult}.IsSprint())
}

func TestSessionsReturnsCopy(t *testing.T) {
	s := Sessions()
	s[0].Label = "changed"
	assert.Equal(t, "Sprint_Qualifying", Sessions()[0].Label)
}

func TestSiteURLs(t *testing.T) {
	site := NewSite("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080", site.BaseURL())
	assert.Equal(t, "http://localhost:8080/en/results/2024/races", site.ListingURL(2024))
	assert.Equal(t, "http://localhost:8080/a/b", site.Resolve("/a/b"))
	assert.Equal(t, "http://localhost:8080/a/b", site.Resolve("a/b"))
	assert.Equal(t, "https://example.com/x", site.Resolve("https://example.com/x"))
}

const listingPage = `<html><body>
<table class="f1-table Table-module_table__xyz">
<thead><tr><th>Grand Prix</th><th>Date</th><th>Winner</th></tr></thead>
<tbody>
<tr><td><a href="/en/results/2025/races/1254/australia"><img alt="Flag of Australia">Australia</a></td><td>16 Mar</td><td>Lando Norris</td></tr>
<tr><td><a href="https://www.formula1.com/en/results/2025/races/1258/emilia-romagna?tab=1">Flag of ItalyEmilia-Romagna</a></td><td>18 May</td><td>Max Verstappen</td></tr>
<tr><td><a href="/en/promo/tickets">Buy tickets</a></td><td></td><td></td></tr>
<tr><td>No link here</td><td></td><td></td></tr>
<tr></tr>
<tr><td><a href="/en/results/2025/races/1260">Flag of Monaco  Monaco</a></td><td>25 May</td><td></td></tr>
</tbody>
</table>
</body></html>`

func TestParseRaces(t *testing.T) {
	races := ParseRaces(listingPage, 2025)
	require.Len(t, races, 3)

	assert.Equal(t, Race{
		Name:       "Australia",
		Year:       2025,
		Identifier: "1254",
		Slug:       "australia",
		URL:        "/en/results/2025/races/1254/australia",
		URLParts:   []string{"", "en", "results", "2025", "races", "1254", "australia"},
	}, races[0])

	assert.Equal(t, "Emilia Romagna", races[1].Name)
	assert.Equal(t, "1258", races[1].Identifier)
	assert.Equal(t, "emilia-romagna", races[1].Slug)

	assert.Equal(t, "Monaco Monaco", races[2].Name)
	assert.Equal(t, "1260", races[2].Identifier)
	assert.False(t, races[2].Complete())
}

func TestParseRacesWithoutTable(t *testing.T) {
	assert.Empty(t, ParseRaces(`<html><body><p>Schedule coming soon</p></body></html>`, 2031))
}
