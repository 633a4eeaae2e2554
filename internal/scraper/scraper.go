package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/jobcal/internal/config"
	"github.com/pfrederiksen/jobcal/internal/event"
	"github.com/pfrederiksen/jobcal/internal/locator"
	"github.com/pfrederiksen/jobcal/internal/logger"
	"github.com/pfrederiksen/jobcal/internal/normalize"
)

const (
	UserAgent = "jobcal/1.0 (github.com/pfrederiksen/jobcal)"
	Timeout   = 30 * time.Second
)

// Page is a parsed job detail page and the address it was loaded from.
type Page struct {
	URL      string
	Document *goquery.Document
}

// Fetcher loads a page by URL.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*Page, error)
}

var (
	_ Fetcher = (*Scraper)(nil)
	_ Fetcher = (*Renderer)(nil)
)

// ParsePage parses HTML from r. pageURL is used to resolve relative links
// and may be empty.
func ParsePage(r io.Reader, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Page{URL: pageURL, Document: doc}, nil
}

// Scraper fetches pages over plain HTTP.
type Scraper struct {
	client *http.Client
}

// New creates a new Scraper instance
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
	}
}

// Fetch downloads and parses the page at pageURL.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", "ja,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Relative links resolve against the final URL after redirects.
	return ParsePage(resp.Body, resp.Request.URL.String())
}

// Assembler builds an event record from a page.
type Assembler struct {
	cfg *config.Config
	// Now supplies the year for dates printed without one.
	Now func() time.Time
}

// NewAssembler creates an Assembler reading the page with cfg.
func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg, Now: time.Now}
}

// Assemble locates and normalizes every field of page exactly once.
func (a *Assembler) Assemble(page *Page) *event.Record {
	start := time.Now()
	defer func() { logger.RecordTiming("pipeline.assemble", time.Since(start)) }()

	var doc *goquery.Document
	var pageURL string
	if page != nil {
		doc, pageURL = page.Document, page.URL
	}

	loc := locator.New(a.cfg, pageURL)
	period, _ := loc.Locate(doc, locator.WorkPeriod)
	workTime, _ := loc.Locate(doc, locator.WorkTime)
	title, titleFound := loc.Locate(doc, locator.JobTitle)
	mapLink, mapFound := loc.Locate(doc, locator.MapLink)
	belongings, belongingsFound := loc.Locate(doc, locator.Belongings)
	clothing, clothingFound := loc.Locate(doc, locator.Clothing)

	startTime, endTime := normalize.WorkTime(workTime.Text)

	rec := &event.Record{
		Title:       normalize.Title(title.Text, titleFound, a.cfg.DefaultTitle),
		EventDate:   normalize.EventDate(period.Text, a.Now().Year()),
		StartTime:   startTime,
		EndTime:     endTime,
		LocationURL: normalize.LocationURL(mapLink.Text, mapFound),
		Notes: normalize.Notes([]normalize.Note{
			{Label: a.cfg.Labels.Belongings, Text: belongings.Text, Found: belongingsFound},
			{Label: a.cfg.Labels.Clothing, Text: clothing.Text, Found: clothingFound},
		}),
		SourceURL: pageURL,
	}

	if !rec.Complete() {
		logger.IncrCounter("pipeline.incomplete")
		logger.Warn("incomplete event", logger.Fields{
			"source_url": pageURL,
			"missing":    rec.Missing(),
		})
	}

	return rec
}
