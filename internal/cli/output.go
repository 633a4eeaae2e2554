package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/jobcal/internal/event"
	"github.com/pfrederiksen/jobcal/internal/locator"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt time.Time        `json:"generated_at"`
	ID          string           `json:"id"`
	Event       *event.Record    `json:"event"`
	Link        string           `json:"link"`
	Complete    bool             `json:"complete"`
	Missing     []string         `json:"missing,omitempty"`
	Fields      []locator.Status `json:"fields,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	rec := result.Event
	fmt.Fprintln(w, rec.Title)

	if result.Complete {
		fmt.Fprintf(w, "%s %s-%s\n", rec.EventDate, rec.StartTime, rec.EndTime)
		fmt.Fprintln(w, result.Link)
	} else {
		fmt.Fprintf(w, "No calendar link: missing %s\n", strings.Join(result.Missing, ", "))
	}

	if verbose {
		fmt.Fprintf(w, "  ID: %s\n", result.ID)
		for _, s := range result.Fields {
			state := "not found"
			if s.Found {
				state = s.Strategy
			}
			fmt.Fprintf(w, "  %s: %s\n", s.Name, state)
		}
	}

	return nil
}
