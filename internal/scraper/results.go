package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"f1results/internal/extractor"
	"f1results/internal/fetcher"
	"f1results/internal/manifest"
	"f1results/internal/output"
	"f1results/internal/sites/formula1"

	"go.uber.org/zap"
)

// Scraper walks seasons, races and sessions one page at a time and writes
// every results table it finds.
type Scraper struct {
	renderer PageRenderer
	site     *formula1.Site
	writer   *output.Writer
	opts     Options

	recorder Recorder
	logger   *zap.Logger
	progress io.Writer
	runID    string
	summary  output.Summary
}

// New creates a Scraper. The renderer, and whatever browser backs it, stays
// owned by the caller.
func New(renderer PageRenderer, site *formula1.Site, writer *output.Writer, opts Options, options ...Option) *Scraper {
	s := &Scraper{
		renderer: renderer,
		site:     site,
		writer:   writer,
		opts:     opts,
		logger:   zap.NewNop(),
		progress: io.Discard,
	}
	for _, o := range options {
		o(s)
	}
	if s.runID == "" {
		s.runID = manifest.NewRunID()
	}
	return s
}

// RunID identifies this run in the manifest.
func (s *Scraper) RunID() string {
	return s.runID
}

// Summary returns the outcomes collected so far.
func (s *Scraper) Summary() *output.Summary {
	return &s.summary
}

// Run scrapes every season in [StartYear, EndYear].
// Session level failures are recorded and skipped; anything else aborts the run.
func (s *Scraper) Run(ctx context.Context) error {
	s.logger.Info("starting run",
		zap.String("run_id", s.runID),
		zap.Int("start_year", s.opts.StartYear),
		zap.Int("end_year", s.opts.EndYear),
		zap.String("output", s.writer.Root()))

	for year := s.opts.StartYear; year <= s.opts.EndYear; year++ {
		s.printf("\n%s\nYEAR: %d\n%s\n", strings.Repeat("=", 60), year, strings.Repeat("=", 60))

		races, err := s.Races(ctx, year)
		if err != nil {
			return fmt.Errorf("year %d: %w", year, err)
		}

		for i, race := range races {
			s.printf("\n[%d/%d] ", i+1, len(races))
			if err := s.ScrapeRace(ctx, race); err != nil {
				return fmt.Errorf("year %d, %s: %w", year, race.Name, err)
			}
		}

		s.printf("\nCompleted %d\n", year)
	}
	return nil
}

// Races renders a season's listing page and returns its races in page order.
func (s *Scraper) Races(ctx context.Context, year int) ([]formula1.Race, error) {
	url := s.site.ListingURL(year)
	s.printf("\nFetching races for %d...\nURL: %s\n", year, url)

	html, err := s.renderer.Render(ctx, url, s.wait(s.opts.ListingWait))
	if err != nil {
		return nil, fmt.Errorf("failed to render race listing: %w", err)
	}

	races := formula1.ParseRaces(html, year)
	s.printf("Found %d races for %d\n", len(races), year)
	if len(races) > 0 {
		s.printf("First race: %s\n", races[0].Name)
	}
	s.logger.Debug("parsed race listing", zap.Int("year", year), zap.Int("races", len(races)))

	return races, nil
}

// ScrapeRace visits every session of race in order.
// A race whose link lacks the data needed to build session URLs is skipped.
func (s *Scraper) ScrapeRace(ctx context.Context, race formula1.Race) error {
	s.printf("\n  Scraping: %s\n", race.Name)

	targets, err := s.site.SessionTargets(race)
	if err != nil {
		if errors.Is(err, formula1.ErrIncompleteRace) {
			s.logger.Warn("skipping race", zap.String("race", race.Name), zap.String("url", race.URL), zap.Error(err))
			return nil
		}
		return err
	}

	for _, target := range targets {
		if _, err := s.ScrapeSession(ctx, race, target); err != nil {
			return err
		}
		if err := fetcher.Sleep(ctx, s.opts.Pause); err != nil {
			return err
		}
	}
	return nil
}

// ScrapeSession renders one session page and persists its table when present.
// Render failures and pages without usable data are reported in the returned
// Visit, not as errors. Errors are reserved for cancellation and failing writes.
func (s *Scraper) ScrapeSession(ctx context.Context, race formula1.Race, target formula1.Target) (manifest.Visit, error) {
	start := time.Now()
	visit := manifest.Visit{
		RunID:   s.runID,
		Year:    race.Year,
		Race:    race.Name,
		Session: target.Session.Label,
		URL:     target.URL,
	}
	s.printf("    - %s ", target.Session.Label)

	log := s.logger.With(
		zap.Int("year", race.Year),
		zap.String("race", race.Name),
		zap.String("session", target.Session.Label),
		zap.String("url", target.URL))

	html, err := s.renderer.Render(ctx, target.URL, s.wait(s.opts.SessionWait))
	if err != nil {
		if ctx.Err() != nil {
			s.printf("\n")
			return visit, ctx.Err()
		}
		log.Warn("failed to render session page", zap.Error(err))
		visit.Status = manifest.StatusFailed
		visit.Error = err.Error()
	} else if table, ok := extractor.Extract(html); !ok || table.Empty() {
		visit.Status = manifest.StatusMissing
	} else {
		path, err := s.writer.Write(race.Year, race.Name, target.Session.Label, table)
		if err != nil {
			s.printf("\n")
			return visit, fmt.Errorf("%s: %w", target.Session.Label, err)
		}
		if table.Dropped > 0 {
			log.Warn("dropped rows with unexpected width", zap.Int("dropped", table.Dropped))
		}
		visit.Status = manifest.StatusSaved
		visit.Rows = table.Len()
		visit.Path = path
	}

	visit.Duration = time.Since(start)
	visit.CreatedAt = time.Now().UTC()
	s.finish(ctx, log, target.Session, visit)
	return visit, nil
}

func (s *Scraper) finish(ctx context.Context, log *zap.Logger, session formula1.Session, visit manifest.Visit) {
	switch {
	case visit.Status == manifest.StatusSaved:
		s.printf("✓ (%d rows)\n", visit.Rows)
	case session.IsSprint():
		s.printf("✗ (no sprint)\n")
	default:
		s.printf("✗\n")
	}

	log.Debug("session visited",
		zap.String("status", string(visit.Status)),
		zap.Int("rows", visit.Rows),
		zap.Duration("elapsed", visit.Duration))

	s.summary.Add(visit)
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, visit); err != nil {
			log.Warn("failed to record visit", zap.Error(err))
		}
	}
}

func (s *Scraper) wait(settle time.Duration) fetcher.Wait {
	return fetcher.Wait{
		Strategy: s.opts.WaitFor,
		Selector: extractor.TableSelector,
		Settle:   settle,
	}
}

func (s *Scraper) printf(format string, args ...any) {
	fmt.Fprintf(s.progress, format, args...)
}
