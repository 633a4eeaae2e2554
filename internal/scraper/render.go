package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/pfrederiksen/jobcal/internal/logger"
)

// DefaultRenderDelay is how long the renderer waits after the load event
// for late-rendering page content.
const DefaultRenderDelay = 1500 * time.Millisecond

// Renderer loads pages in headless Chromium so that script-built markup is
// present in the parsed document.
type Renderer struct {
	// Delay is a fixed wait after the load event, not a readiness signal.
	Delay time.Duration
	// Install downloads the browser driver before the first run.
	Install bool
}

// NewRenderer creates a Renderer with the default delay.
func NewRenderer() *Renderer {
	return &Renderer{Delay: DefaultRenderDelay}
}

// Fetch renders pageURL and parses the resulting DOM.
func (r *Renderer) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	if r.Install {
		if err := playwright.Install(&playwright.RunOptions{Verbose: false}); err != nil {
			return nil, fmt.Errorf("installing playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}
	defer func() {
		if stopErr := pw.Stop(); stopErr != nil {
			logger.Warn("stopping playwright", logger.Fields{"error": stopErr.Error()})
		}
	}()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--disable-dev-shm-usage", "--no-sandbox"},
	})
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		UserAgent: playwright.String(UserAgent),
		Locale:    playwright.String("ja-JP"),
	})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	timeout := Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", pageURL, err)
	}

	if r.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.Delay):
		}
	}

	content, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("reading rendered content: %w", err)
	}

	logger.Debug("page rendered", logger.Fields{"url": page.URL(), "bytes": len(content)})

	return ParsePage(strings.NewReader(content), page.URL())
}
