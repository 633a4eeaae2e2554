// Package scraper acquires a job detail page and assembles its event record.
//
// Pages are fetched over HTTP, rendered in a headless browser when the content
// is produced by scripts, or parsed from a saved file. The Assembler runs the
// locator and normalizers once per field and packages the results into an
// event.Record; it has no failure modes of its own.
package scraper
