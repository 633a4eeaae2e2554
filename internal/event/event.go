package event

import (
	"strings"

	"github.com/google/uuid"
)

// namespace scopes the name-based UUIDs generated for records.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pfrederiksen/jobcal"))

// Record is the normalized, schedulable content of one job posting.
type Record struct {
	Title       string `json:"title"`
	EventDate   string `json:"event_date"` // YYYY/M/D
	StartTime   string `json:"start_time"` // H:MM or HH:MM
	EndTime     string `json:"end_time"`
	LocationURL string `json:"location_url"`
	Notes       string `json:"notes"`
	SourceURL   string `json:"source_url,omitempty"`
}

// Complete reports whether the record carries everything a timed calendar
// event needs: a date and both ends of the time range.
func (r *Record) Complete() bool {
	return r.EventDate != "" && r.StartTime != "" && r.EndTime != ""
}

// Missing lists the names of the scheduling fields that are empty.
func (r *Record) Missing() []string {
	var missing []string
	if r.EventDate == "" {
		missing = append(missing, "event_date")
	}
	if r.StartTime == "" {
		missing = append(missing, "start_time")
	}
	if r.EndTime == "" {
		missing = append(missing, "end_time")
	}
	return missing
}

// ID returns a deterministic identifier for the record. The same posting
// extracted twice yields the same ID, so calendar imports stay idempotent.
func (r *Record) ID() string {
	key := strings.Join([]string{r.SourceURL, r.EventDate, r.StartTime, r.EndTime, r.Title}, "|")
	return uuid.NewSHA1(namespace, []byte(key)).String()
}
