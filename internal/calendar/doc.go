// Package calendar turns an extracted job posting into calendar entries.
//
// GenerateURL builds a Google Calendar "add event" deep link whose dates use the
// compact YYYYMMDDTHHMMSS form. GenerateICS writes the same event as an
// iCalendar document for calendar apps that import .ics files. Both refuse to
// produce output when the date or either end of the time range is missing.
package calendar
