package browser

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultUserAgent mimics a desktop Chrome so the results site serves its normal markup.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config controls how the browser process is launched.
type Config struct {
	Headless  bool
	ProxyURL  string
	UserAgent string
}

// Browser wraps a rod.Browser and the launcher that owns its process.
// It is created once per run and must be released with Close.
type Browser struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	proxyURL  string
	userAgent string
}

// New launches a Chrome process and connects to it.
func New(cfg Config) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled")

	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	rb := rod.New().ControlURL(url)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Browser{
		browser:   rb,
		launcher:  l,
		proxyURL:  cfg.ProxyURL,
		userAgent: ua,
	}, nil
}

// ProxyURL returns the proxy the browser was launched with, if any.
func (b *Browser) ProxyURL() string {
	return b.proxyURL
}

// NewPage opens a blank tab with the configured user agent applied.
func (b *Browser) NewPage() (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("failed to set user agent: %w", err)
	}
	return page, nil
}

// Close shuts the browser down and kills the launched process.
// Calling it more than once is safe.
func (b *Browser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}
