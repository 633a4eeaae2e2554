// Package locator finds the raw text of each schedulable field in a job posting.
//
// Every field has an ordered chain of strategies: a precise CSS selector first,
// then structural fallbacks (label scans over rows or header cells) and finally
// a pattern search over the page text. The first strategy that yields non-blank
// text wins. Strategies never fail loudly; an invalid selector or a panic during
// traversal is logged and treated as "not found".
package locator
