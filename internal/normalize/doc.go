// Package normalize turns located raw text into canonical field values.
//
// All functions are total: malformed or missing input yields the empty string
// (or the caller's fallback title) instead of an error. Input is width-folded
// first so full-width digits and punctuation parse like their ASCII forms.
package normalize
