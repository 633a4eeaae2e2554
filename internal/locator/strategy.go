package locator

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/text/width"

	"github.com/pfrederiksen/jobcal/internal/logger"
)

// Strategy names
const (
	StrategySelector  = "selector"
	StrategyLabelScan = "label-scan"
	StrategyPattern   = "pattern"
)

// Strategy is one way of resolving a field. Locate returns the raw text and
// whether the strategy matched.
type Strategy struct {
	Name   string
	Locate func(doc *goquery.Document) (string, bool)
}

var (
	// A date followed by its weekday annotation, e.g. "5/3(土)" or "2025/5/3 (土)".
	datePattern = regexp.MustCompile(`(?:\d{4}\s*/\s*)?\d{1,2}\s*/\s*\d{1,2}\s*\(`)

	// A time range, e.g. "9:00-17:30" or "9:00 ~ 17:30".
	timeRangePattern = regexp.MustCompile(`\d{1,2}\s*:\s*\d{2}\s*[-~〜]\s*\d{1,2}\s*:\s*\d{2}`)
)

func compile(selector string) (cascadia.Selector, bool) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		logger.Warn("invalid selector", logger.Fields{"selector": selector, "error": err.Error()})
		return nil, false
	}
	return sel, true
}

// bySelector returns the text of the first element matching selector.
func bySelector(selector string) Strategy {
	return Strategy{
		Name: StrategySelector,
		Locate: func(doc *goquery.Document) (string, bool) {
			m, ok := compile(selector)
			if !ok {
				return "", false
			}
			found := doc.FindMatcher(m).First()
			if found.Length() == 0 {
				return "", false
			}
			return nonBlank(found.Text())
		},
	}
}

// byRowLabel scans rows, picks the first whose label element (the row's first
// child) contains label and returns the text of that label's next sibling.
func byRowLabel(rowSelector, label string) Strategy {
	return Strategy{
		Name: StrategyLabelScan,
		Locate: func(doc *goquery.Document) (string, bool) {
			m, ok := compile(rowSelector)
			if !ok || label == "" {
				return "", false
			}

			var text string
			var found bool
			doc.FindMatcher(m).EachWithBreak(func(_ int, row *goquery.Selection) bool {
				labelCell := row.Children().First()
				if !strings.Contains(labelCell.Text(), label) {
					return true
				}
				text, found = nonBlank(labelCell.Next().Text())
				return !found
			})
			return text, found
		},
	}
}

// byHeaderLabel scans header cells and returns the cell following the first
// header whose text contains label and has a cell after it. A blank cell
// there is a miss; later headers are not consulted.
func byHeaderLabel(headerSelector, label string) Strategy {
	return Strategy{
		Name: StrategyLabelScan,
		Locate: func(doc *goquery.Document) (string, bool) {
			m, ok := compile(headerSelector)
			if !ok || label == "" {
				return "", false
			}

			var text string
			var found bool
			doc.FindMatcher(m).EachWithBreak(func(_ int, header *goquery.Selection) bool {
				if !strings.Contains(header.Text(), label) {
					return true
				}
				next := header.Next()
				if next.Length() == 0 {
					return true
				}
				text, found = nonBlank(next.Text())
				return false
			})
			return text, found
		},
	}
}

// byPattern searches the width-folded body text for re.
func byPattern(re *regexp.Regexp) Strategy {
	return Strategy{
		Name: StrategyPattern,
		Locate: func(doc *goquery.Document) (string, bool) {
			body := width.Fold.String(doc.Find("body").Text())
			match := re.FindString(body)
			if match == "" {
				return "", false
			}
			return match, true
		},
	}
}

// byAnchorHref returns the absolute URL of the first matching anchor, resolved
// the way a browser resolves a.href: against <base href> when the document has
// one, else against the page URL.
func byAnchorHref(selector string, pageURL *url.URL) Strategy {
	return Strategy{
		Name: StrategySelector,
		Locate: func(doc *goquery.Document) (string, bool) {
			m, ok := compile(selector)
			if !ok {
				return "", false
			}
			href, exists := doc.FindMatcher(m).First().Attr("href")
			href = strings.TrimSpace(href)
			if !exists || href == "" {
				return "", false
			}

			ref, err := url.Parse(href)
			if err != nil {
				return "", false
			}

			resolved := documentBase(doc, pageURL).ResolveReference(ref)
			if !resolved.IsAbs() || resolved.Host == "" {
				return "", false
			}
			return resolved.String(), true
		},
	}
}

func documentBase(doc *goquery.Document, pageURL *url.URL) *url.URL {
	base := pageURL
	if base == nil {
		base = &url.URL{}
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			return base.ResolveReference(ref)
		}
	}
	return base
}

func nonBlank(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
