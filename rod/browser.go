package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// browserPool owns one headless Chrome and replaces it after maxPages pages.
// Chrome memory grows under load and never returns to its baseline, so a
// long interactive session periodically starts a fresh browser.
type browserPool struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

// acquire returns the current browser, recycling it first if it has served
// maxPages pages. Each call counts as one page.
func (p *browserPool) acquire() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("browser closed")
	}
	if p.browser == nil || (p.maxPages > 0 && p.pages >= p.maxPages) {
		p.recycle()
	}
	if p.browser == nil {
		return nil, fmt.Errorf("no browser available")
	}
	p.pages++
	return p.browser, nil
}

// launch starts a new browser instance with stability flags.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

// recycle starts a fresh browser and closes the old one. If the launch
// fails, the old browser is kept. Must be called with mu held.
func (p *browserPool) recycle() {
	browser, l, err := launch()
	if err != nil {
		return
	}
	p.shutdown()
	p.browser, p.launcher, p.pages = browser, l, 0
}

// shutdown closes the current browser and launcher. Must be called with mu held.
func (p *browserPool) shutdown() error {
	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	if p.launcher != nil {
		p.launcher.Kill()
		p.launcher = nil
	}
	return err
}

// close releases browser resources. It is safe to call multiple times.
func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.shutdown()
}
