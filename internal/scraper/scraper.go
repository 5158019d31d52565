package scraper

import (
	"context"
	"io"
	"time"

	"f1results/internal/fetcher"
	"f1results/internal/manifest"

	"go.uber.org/zap"
)

// PageRenderer turns a URL into rendered HTML.
type PageRenderer interface {
	Render(ctx context.Context, url string, wait fetcher.Wait) (string, error)
}

// Recorder receives one Visit per session page attempted.
type Recorder interface {
	Record(ctx context.Context, v manifest.Visit) error
}

// Options controls which seasons are scraped and how pages are waited for.
type Options struct {
	StartYear   int
	EndYear     int
	WaitFor     fetcher.WaitStrategy
	ListingWait time.Duration // Settle time of a season's race listing
	SessionWait time.Duration // Settle time of a session results page
	Pause       time.Duration // Politeness pause after every session request
}

// DefaultOptions scrapes a single season with the site's usual settle times.
func DefaultOptions(year int) Options {
	return Options{
		StartYear:   year,
		EndYear:     year,
		WaitFor:     fetcher.WaitStrategyElement,
		ListingWait: 4 * time.Second,
		SessionWait: 3 * time.Second,
		Pause:       time.Second,
	}
}

// Option customizes a Scraper.
type Option func(*Scraper)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithProgress sets where human-readable progress markers are printed.
func WithProgress(w io.Writer) Option {
	return func(s *Scraper) {
		s.progress = w
	}
}

// WithRecorder records every session visit, e.g. into a manifest.Store.
func WithRecorder(r Recorder) Option {
	return func(s *Scraper) {
		s.recorder = r
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(s *Scraper) {
		s.runID = id
	}
}
