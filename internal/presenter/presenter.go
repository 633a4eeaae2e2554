package presenter

import (
	"context"
	"errors"

	"github.com/pfrederiksen/jobcal/internal/event"
)

// ErrNoLink is returned when asked to present an empty link.
var ErrNoLink = errors.New("no calendar link to present")

// Presenter defines the interface for delivering a calendar link
type Presenter interface {
	// Present delivers link, built from rec, to the user.
	Present(ctx context.Context, link string, rec *event.Record) error
}

// schedule renders the date and time range of rec for humans.
func schedule(rec *event.Record) string {
	return rec.EventDate + " " + rec.StartTime + "〜" + rec.EndTime
}
