package locator

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/jobcal/internal/config"
	"github.com/pfrederiksen/jobcal/internal/logger"
)

// Locator resolves fields by trying each field's strategies in order.
type Locator struct {
	chains map[Field][]Strategy
}

// New builds the strategy chains from cfg. pageURL is the address of the
// document and is used to resolve relative links; it may be empty.
func New(cfg *config.Config, pageURL string) *Locator {
	var base *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			base = u
		} else {
			logger.Warn("ignoring unparseable page URL", logger.Fields{"page_url": pageURL})
		}
	}

	sel := cfg.Selectors
	labels := cfg.Labels

	return &Locator{
		chains: map[Field][]Strategy{
			WorkPeriod: {
				bySelector(sel.WorkPeriod),
				byRowLabel(sel.DetailRow, labels.WorkPeriod),
				byPattern(datePattern),
			},
			WorkTime: {
				bySelector(sel.WorkTime),
				byRowLabel(sel.DetailRow, labels.WorkTime),
				byPattern(timeRangePattern),
			},
			JobTitle: {
				bySelector(sel.JobTitle),
			},
			MapLink: {
				byAnchorHref(sel.MapLink, base),
			},
			Belongings: {
				byHeaderLabel(sel.HeaderCell, labels.Belongings),
			},
			Clothing: {
				byHeaderLabel(sel.HeaderCell, labels.Clothing),
			},
		},
	}
}

// Append adds a strategy to the end of a field's chain.
func (l *Locator) Append(f Field, s Strategy) {
	l.chains[f] = append(l.chains[f], s)
}

// Locate returns the raw text of f from the first strategy that matches.
// It reports false when no strategy matched.
func (l *Locator) Locate(doc *goquery.Document, f Field) (RawField, bool) {
	for _, s := range l.chains[f] {
		text, ok := attempt(doc, f, s)
		if !ok {
			logger.Debug("strategy missed", logger.Fields{"field": f.String(), "strategy": s.Name})
			continue
		}
		logger.IncrCounter(fmt.Sprintf("locator.%s.%s", f, s.Name))
		return RawField{Field: f, Text: text, Strategy: s.Name}, true
	}

	logger.IncrCounter(fmt.Sprintf("locator.%s.miss", f))
	return RawField{Field: f}, false
}

// attempt runs one strategy, mapping any panic during traversal to a miss.
func attempt(doc *goquery.Document, f Field, s Strategy) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("strategy failed", logger.Fields{
				"field":    f.String(),
				"strategy": s.Name,
				"panic":    fmt.Sprint(r),
			})
			text, ok = "", false
		}
	}()
	if doc == nil {
		return "", false
	}
	return s.Locate(doc)
}

// Status is the outcome of locating one field.
type Status struct {
	Field    Field  `json:"field"`
	Name     string `json:"name"`
	Found    bool   `json:"found"`
	Strategy string `json:"strategy,omitempty"`
}

// Check locates every field and reports which were found and how.
func (l *Locator) Check(doc *goquery.Document) []Status {
	fields := AllFields()
	statuses := make([]Status, 0, len(fields))
	found := 0
	for _, f := range fields {
		raw, ok := l.Locate(doc, f)
		if ok {
			found++
		}
		statuses = append(statuses, Status{
			Field:    f,
			Name:     f.DisplayName(),
			Found:    ok,
			Strategy: raw.Strategy,
		})
	}
	logger.SetGauge("locator.fields_found", float64(found))
	return statuses
}
