package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/pfrederiksen/jobcal/internal/logger"
)

var (
	// YYYY/M/D anywhere in the text
	fullDate = regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`)

	monthDay = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)

	// H:MM-H:MM at the start of the whitespace-free text
	timeRange = regexp.MustCompile(`^(\d{1,2}:\d{2})[-~〜](\d{1,2}:\d{2})`)
)

// guard runs fn and maps a panic to the empty result.
func guard(name string, fn func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("normalization failed", logger.Fields{"field": name, "panic": fmt.Sprint(r)})
			out = ""
		}
	}()
	return fn()
}

// stripSpace folds full-width characters and drops every Unicode space,
// including the NBSP that &nbsp; decodes to.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, width.Fold.String(s))
}

// EventDate normalizes a work period text to YYYY/M/D.
//
// A full YYYY/M/D date anywhere in the text keeps its year. Otherwise the
// text before the first "(" (the weekday annotation) must be M/D and is
// prefixed with year. Digits are kept as written; padding happens when the
// calendar timestamp is formatted.
func EventDate(text string, year int) string {
	return guard("event_date", func() string {
		s := stripSpace(text)
		if s == "" {
			return ""
		}

		if m := fullDate.FindStringSubmatch(s); m != nil {
			if !validMonthDay(m[2], m[3]) {
				return ""
			}
			return m[1] + "/" + m[2] + "/" + m[3]
		}

		head, _, _ := strings.Cut(s, "(")
		m := monthDay.FindStringSubmatch(head)
		if m == nil || !validMonthDay(m[1], m[2]) {
			return ""
		}
		return fmt.Sprintf("%d/%s/%s", year, m[1], m[2])
	})
}

func validMonthDay(month, day string) bool {
	mo, err := strconv.Atoi(month)
	if err != nil || mo < 1 || mo > 12 {
		return false
	}
	d, err := strconv.Atoi(day)
	return err == nil && d >= 1 && d <= 31
}

// WorkTime splits a work time text into start and end times.
//
// Whitespace is removed first. Two H:MM tokens joined by "-" (or a tilde) are
// taken as-is; otherwise the text is split on its first "-" and either side
// may come back empty.
func WorkTime(text string) (start, end string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("normalization failed", logger.Fields{"field": "work_time", "panic": fmt.Sprint(r)})
			start, end = "", ""
		}
	}()
	return splitTimeRange(text)
}

func splitTimeRange(text string) (string, string) {
	s := stripSpace(text)
	if m := timeRange.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	start, end, _ := strings.Cut(s, "-")
	return start, end
}

// Title trims the located title, or returns fallback when the title element
// was absent or blank. Runs of internal whitespace collapse to one space.
func Title(text string, found bool, fallback string) string {
	if !found {
		return fallback
	}
	t := strings.Join(strings.Fields(text), " ")
	if t == "" {
		return fallback
	}
	return t
}

// LocationURL returns the resolved map link, or "" when it was not found.
func LocationURL(text string, found bool) string {
	if !found {
		return ""
	}
	return strings.TrimSpace(text)
}

// Note is one labeled detail cell.
type Note struct {
	Label string
	Text  string
	Found bool
}

// Notes renders each found note as "<label>: <text>" and joins them with
// newlines. Notes that were not found, or are blank, are left out.
func Notes(notes []Note) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		text := strings.TrimSpace(n.Text)
		if !n.Found || text == "" {
			continue
		}
		lines = append(lines, n.Label+": "+text)
	}
	return strings.Join(lines, "\n")
}
