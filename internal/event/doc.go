// Package event defines the normalized calendar event extracted from a job posting.
//
// A Record is produced once per page by the scraper's assembler and handed to the
// calendar and presenter packages. Every field is always present; a field that could
// not be resolved holds the empty string rather than a nil or sentinel value.
package event
