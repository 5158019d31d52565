package output

import (
	"io"

	"f1results/internal/manifest"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// RaceTotals aggregates the session visits of one race.
type RaceTotals struct {
	Year    int
	Race    string
	Saved   int
	Missing int
	Failed  int
	Rows    int
}

// Summary collects visit outcomes for the end-of-run report.
type Summary struct {
	races []*RaceTotals
}

// Add counts v towards its race. Races keep the order they were first seen in.
func (s *Summary) Add(v manifest.Visit) {
	totals, ok := lo.Find(s.races, func(r *RaceTotals) bool {
		return r.Year == v.Year && r.Race == v.Race
	})
	if !ok {
		totals = &RaceTotals{Year: v.Year, Race: v.Race}
		s.races = append(s.races, totals)
	}

	switch v.Status {
	case manifest.StatusSaved:
		totals.Saved++
		totals.Rows += v.Rows
	case manifest.StatusMissing:
		totals.Missing++
	case manifest.StatusFailed:
		totals.Failed++
	}
}

// Races returns per-race totals in first-seen order.
func (s *Summary) Races() []RaceTotals {
	return lo.Map(s.races, func(r *RaceTotals, _ int) RaceTotals { return *r })
}

// Totals sums every race.
func (s *Summary) Totals() RaceTotals {
	return lo.Reduce(s.races, func(acc RaceTotals, r *RaceTotals, _ int) RaceTotals {
		acc.Saved += r.Saved
		acc.Missing += r.Missing
		acc.Failed += r.Failed
		acc.Rows += r.Rows
		return acc
	}, RaceTotals{})
}

// Render prints the summary as a table.
func (s *Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Year", "Race", "Saved", "Missing", "Failed", "Rows"})

	for _, r := range s.races {
		t.AppendRow(table.Row{r.Year, r.Race, r.Saved, r.Missing, r.Failed, r.Rows})
	}

	total := s.Totals()
	t.AppendFooter(table.Row{"", "Total", total.Saved, total.Missing, total.Failed, total.Rows})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
