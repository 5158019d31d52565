package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"f1results/internal/browser"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
)

// WaitStrategy decides how long a rendered page is given before its HTML is read.
type WaitStrategy string

const (
	WaitStrategyElement WaitStrategy = "element" // Wait for a selector, bounded by Settle
	WaitStrategyTime    WaitStrategy = "time"    // Sleep for Settle
)

// Wait describes the readiness condition of a single render.
type Wait struct {
	Strategy WaitStrategy
	Selector string        // Required for WaitStrategyElement
	Settle   time.Duration // Upper bound for element, exact duration for time
}

// Fetcher renders pages through a shared browser.
type Fetcher struct {
	browser *browser.Browser
	timeout time.Duration
	logger  *zap.Logger
}

// NewFetcher creates a Fetcher. timeout bounds navigation only.
func NewFetcher(b *browser.Browser, timeout time.Duration, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		browser: b,
		timeout: timeout,
		logger:  logger,
	}
}

// Render opens url in a fresh tab, waits according to wait and returns the
// document HTML. The tab is closed before returning.
//
// An element wait that times out is not an error: the page is returned as
// rendered so far and callers decide whether the content they need is there.
func (f *Fetcher) Render(ctx context.Context, url string, wait Wait) (string, error) {
	page, err := f.browser.NewPage()
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	start := time.Now()
	if err := page.Timeout(f.timeout).Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}

	if err := f.applyWaitStrategy(ctx, page, wait); err != nil {
		return "", fmt.Errorf("wait strategy failed: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}

	f.logger.Debug("rendered page",
		zap.String("url", url),
		zap.String("wait", string(wait.Strategy)),
		zap.Duration("elapsed", time.Since(start)))

	return html, nil
}

func (f *Fetcher) applyWaitStrategy(ctx context.Context, page *rod.Page, wait Wait) error {
	switch wait.Strategy {
	case WaitStrategyElement:
		if wait.Selector == "" {
			return fmt.Errorf("wait selector is required for element strategy")
		}
		_, err := page.Timeout(wait.Settle).Element(wait.Selector)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			f.logger.Debug("wait selector not found before timeout",
				zap.String("selector", wait.Selector),
				zap.Duration("timeout", wait.Settle))
			return nil
		}
		return fmt.Errorf("failed to wait for element '%s': %w", wait.Selector, err)

	case WaitStrategyTime:
		if err := page.Timeout(f.timeout).WaitLoad(); err != nil {
			return fmt.Errorf("failed to wait for page load: %w", err)
		}
		return Sleep(ctx, wait.Settle)

	default:
		return fmt.Errorf("unsupported wait strategy: %s", wait.Strategy)
	}
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
