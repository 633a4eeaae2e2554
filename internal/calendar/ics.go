package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/pfrederiksen/jobcal/internal/event"
)

// ErrIncompleteEvent is returned when a record lacks a date or time.
var ErrIncompleteEvent = errors.New("incomplete event: date, start time and end time are required")

const productID = "-//jobcal//jobcal//JA"

// GenerateICS renders rec as an iCalendar document. Times are floating
// (no time zone), matching the local times printed on the posting.
func GenerateICS(rec *event.Record) (string, error) {
	return generateICS(rec, time.Now())
}

func generateICS(rec *event.Record, now time.Time) (string, error) {
	if rec == nil {
		return "", ErrIncompleteEvent
	}
	start, end, ok := eventRange(rec)
	if !ok {
		return "", fmt.Errorf("%w (missing %s)", ErrIncompleteEvent, strings.Join(rec.Missing(), ", "))
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	evt := ical.NewEvent()
	evt.Props.SetText(ical.PropUID, rec.ID()+"@jobcal")
	evt.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	setRaw(evt.Props, ical.PropDateTimeStart, start)
	setRaw(evt.Props, ical.PropDateTimeEnd, end)
	evt.Props.SetText(ical.PropSummary, rec.Title)

	description := rec.Notes
	if rec.SourceURL != "" {
		if description != "" {
			description += "\n\n"
		}
		description += rec.SourceURL
		setRaw(evt.Props, ical.PropURL, rec.SourceURL)
	}
	if description != "" {
		evt.Props.SetText(ical.PropDescription, description)
	}
	if rec.LocationURL != "" {
		evt.Props.SetText(ical.PropLocation, rec.LocationURL)
	}
	evt.Props.SetText(ical.PropStatus, "CONFIRMED")
	evt.Props.SetText(ical.PropTransparency, "OPAQUE")

	cal.Children = append(cal.Children, evt.Component)

	var b strings.Builder
	if err := ical.NewEncoder(&b).Encode(cal); err != nil {
		return "", fmt.Errorf("encoding calendar: %w", err)
	}
	return b.String(), nil
}

// setRaw stores value verbatim, for floating date-times and URIs.
func setRaw(props ical.Props, name, value string) {
	prop := ical.NewProp(name)
	prop.Value = value
	props.Set(prop)
}
