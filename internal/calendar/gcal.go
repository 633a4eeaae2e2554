package calendar

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/jobcal/internal/event"
)

// BaseURL is the Google Calendar event template endpoint.
const BaseURL = "https://www.google.com/calendar/render"

const stampLayout = "20060102T150405"

// maxHour allows late-night shifts written past midnight, e.g. 29:00.
const maxHour = 29

// FormatDateTime formats a YYYY/M/D date and H:MM time as YYYYMMDDTHHMM00.
// Month, day, hour and minute are zero-padded to two digits; the year must
// already have four. Hours run to 29 and minutes to 59. It returns "" when
// either input is empty or malformed.
func FormatDateTime(date, clock string) string {
	if date == "" || clock == "" {
		return ""
	}

	d := strings.Split(date, "/")
	c := strings.Split(clock, ":")
	if len(d) != 3 || len(c) != 2 {
		return ""
	}
	if len(d[0]) != 4 || !isDigits(d[0]) {
		return ""
	}

	parts := []string{d[1], d[2], c[0], c[1]}
	for i, p := range parts {
		if p == "" || len(p) > 2 || !isDigits(p) {
			return ""
		}
		parts[i] = pad2(p)
	}
	if !inRange(parts[2], 0, maxHour) || !inRange(parts[3], 0, 59) {
		return ""
	}

	return d[0] + parts[0] + parts[1] + "T" + parts[2] + parts[3] + "00"
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

func inRange(s string, lo, hi int) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= lo && n <= hi
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// parseStamp reads a YYYYMMDDTHHMMSS stamp. Out-of-range hours such as 25:00
// roll over into the next day.
func parseStamp(stamp string) (time.Time, bool) {
	if len(stamp) != len(stampLayout) || stamp[8] != 'T' {
		return time.Time{}, false
	}
	fields := []string{stamp[0:4], stamp[4:6], stamp[6:8], stamp[9:11], stamp[11:13], stamp[13:15]}
	n := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}
	return time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], 0, time.UTC), true
}

// eventRange returns the start and end stamps of rec. An end before the
// start is an overnight shift and moves to the following day.
func eventRange(rec *event.Record) (start, end string, ok bool) {
	start = FormatDateTime(rec.EventDate, rec.StartTime)
	end = FormatDateTime(rec.EventDate, rec.EndTime)
	if start == "" || end == "" {
		return "", "", false
	}

	s, okStart := parseStamp(start)
	e, okEnd := parseStamp(end)
	if !okStart || !okEnd {
		return "", "", false
	}
	if e.Before(s) {
		e = e.AddDate(0, 0, 1)
	}
	return s.Format(stampLayout), e.Format(stampLayout), true
}

// GenerateURL returns the Google Calendar link for rec, or "" when the date
// or either time could not be resolved.
func GenerateURL(rec *event.Record) string {
	if rec == nil {
		return ""
	}
	start, end, ok := eventRange(rec)
	if !ok {
		return ""
	}

	params := []struct {
		key   string
		value string
	}{
		{"action", "TEMPLATE"},
		{"text", rec.Title},
		{"dates", start + "/" + end},
		{"details", rec.Notes},
		{"location", rec.LocationURL},
	}

	var b strings.Builder
	b.WriteString(BaseURL)
	b.WriteByte('?')
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
