package formula1

import (
	"slices"
	"strings"
)

// SessionKind is the URL segment of a results page within a race weekend.
type SessionKind string

const (
	SessionSprintQualifying SessionKind = "sprint-qualifying"
	SessionSprint           SessionKind = "sprint"
	SessionQualifying       SessionKind = "qualifying"
	SessionStartingGrid     SessionKind = "starting-grid"
	SessionFastestLaps      SessionKind = "fastest-laps"
	SessionPitStopSummary   SessionKind = "pit-stop-summary"
	SessionRaceResult       SessionKind = "race-result"
)

// Session pairs a session kind with the label used for its output file.
type Session struct {
	Kind  SessionKind
	Label string
}

// IsSprint reports whether the session only exists on sprint weekends.
func (s Session) IsSprint() bool {
	return strings.Contains(string(s.Kind), "sprint")
}

// Scrape and output order. Practice sessions are not collected.
var sessions = []Session{
	{SessionSprintQualifying, "Sprint_Qualifying"},
	{SessionSprint, "Sprint_Results"},
	{SessionQualifying, "Qualifying"},
	{SessionStartingGrid, "Starting_Grid"},
	{SessionFastestLaps, "Fastest_Laps"},
	{SessionPitStopSummary, "Pit_Stop_Summary"},
	{SessionRaceResult, "Race_Result"},
}

// Sessions returns the collected sessions in scrape order.
func Sessions() []Session {
	return slices.Clone(sessions)
}
