// Package cli implements the command-line interface for jobcal.
//
// The root command reads one job detail page from a URL or a saved file,
// extracts the shift into an event record, and prints a Google Calendar link
// for it as text or JSON. Optional outputs write an .ics file, the page with
// a calendar button injected, or a Telegram message.
//
// Exit codes: 0 when a link was produced, 1 on error, 2 when the page lacked
// the date or times needed for a link.
package cli
